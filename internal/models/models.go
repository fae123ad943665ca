// Package models defines the request and response types of the Wazuh API.
package models

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// ApiResponse is the generic envelope wrapped around every API payload.
// A zero Error code signals success; any other value means Data must not
// be trusted.
type ApiResponse[T any] struct {
	Error   int    `json:"error"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// AgentStatus is the connection state reported for an agent.
type AgentStatus string

const (
	StatusActive         AgentStatus = "active"
	StatusDisconnected   AgentStatus = "disconnected"
	StatusNeverConnected AgentStatus = "never_connected"
	StatusPending        AgentStatus = "pending"
)

// Display returns the human-readable form of the status.
func (s AgentStatus) Display() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusDisconnected:
		return "Disconnected"
	case StatusNeverConnected:
		return "Never Connected"
	case StatusPending:
		return "Pending"
	default:
		return string(s)
	}
}

// Agent describes a single Wazuh agent.
type Agent struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	IP            string      `json:"ip,omitempty"`
	Status        AgentStatus `json:"status"`
	OS            *AgentOS    `json:"os,omitempty"`
	Version       string      `json:"version,omitempty"`
	LastKeepAlive *time.Time  `json:"last_keep_alive,omitempty"`
	DateAdd       *time.Time  `json:"date_add,omitempty"`
	Group         []string    `json:"group,omitempty"`
	NodeName      string      `json:"node_name,omitempty"`
	Manager       string      `json:"manager,omitempty"`
}

// AgentOS describes the operating system an agent runs on.
type AgentOS struct {
	Platform string `json:"platform,omitempty"`
	Version  string `json:"version,omitempty"`
	Name     string `json:"name,omitempty"`
	Arch     string `json:"arch,omitempty"`
	Major    string `json:"major,omitempty"`
	Minor    string `json:"minor,omitempty"`
	Codename string `json:"codename,omitempty"`
}

// AgentListResponse is the payload of agent collection endpoints.
type AgentListResponse struct {
	AffectedItems      []Agent           `json:"affected_items"`
	TotalAffectedItems int               `json:"total_affected_items"`
	TotalFailedItems   int               `json:"total_failed_items"`
	FailedItems        []json.RawMessage `json:"failed_items"`
}

// ServiceStatus is the run state of a manager service.
type ServiceStatus string

const (
	ServiceRunning ServiceStatus = "running"
	ServiceStopped ServiceStatus = "stopped"
	ServiceUnknown ServiceStatus = "unknown"
)

// Display returns the human-readable form of the status.
func (s ServiceStatus) Display() string {
	switch s {
	case ServiceRunning:
		return "Running"
	case ServiceStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Service describes one manager-side daemon.
type Service struct {
	Name    string        `json:"name"`
	Status  ServiceStatus `json:"status"`
	PID     int           `json:"pid,omitempty"`
	Version string        `json:"version,omitempty"`
}

// ManagerInfo is the payload of /manager/info.
type ManagerInfo struct {
	CompilationDate string      `json:"compilation_date,omitempty"`
	Version         string      `json:"version"`
	OpenSSLSupport  string      `json:"openssl_support,omitempty"`
	MaxAgents       string      `json:"max_agents,omitempty"`
	TZOffset        string      `json:"tz_offset,omitempty"`
	TZName          string      `json:"tz_name,omitempty"`
	Name            string      `json:"name"`
	Cluster         ClusterInfo `json:"cluster"`
}

// ClusterInfo describes the manager's cluster membership.
type ClusterInfo struct {
	Enabled  string `json:"enabled,omitempty"`
	NodeName string `json:"node_name,omitempty"`
	NodeType string `json:"node_type,omitempty"`
}

// AgentKey is the registration key of a single agent.
type AgentKey struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// AgentParams are the query parameters accepted by the agent list endpoint.
// Zero-valued fields are omitted from the query string.
type AgentParams struct {
	Limit      int
	Offset     int
	Sort       string
	Search     string
	Status     string
	Query      string
	OSPlatform string
	OSVersion  string
	Manager    string
	Version    string
	Group      string
	NodeName   string
}

// DefaultAgentParams returns list parameters with the default page size.
func DefaultAgentParams() AgentParams {
	return AgentParams{Limit: 500}
}

// Values encodes the parameters as URL query values.
func (p AgentParams) Values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("sort", p.Sort)
	set("search", p.Search)
	set("status", p.Status)
	set("q", p.Query)
	set("os.platform", p.OSPlatform)
	set("os.version", p.OSVersion)
	set("manager", p.Manager)
	set("version", p.Version)
	set("group", p.Group)
	set("node_name", p.NodeName)
	return v
}

// AddAgentRequest is the body of POST /agents.
type AddAgentRequest struct {
	Name  string `json:"name"`
	IP    string `json:"ip,omitempty"`
	Force bool   `json:"force,omitempty"`
}

// AddAgentResponse is the payload returned when an agent is registered.
type AddAgentResponse struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}
