// Package community holds the catalog of known servers, channels and the community profile.
package community

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/community-analyzer/internal/models"
)

// ErrUnknownServer is returned when a server name cannot be resolved
var ErrUnknownServer = errors.New("unknown server")

// allChannels expands to every known channel of a server
const allChannels = "all"

// Catalog is the parsed community configuration file
type Catalog struct {
	Profile       models.CommunityProfile  `yaml:"profile"`
	Servers       []models.CommunityServer `yaml:"servers"`
	ExistingTasks []models.ExistingTask    `yaml:"existing_tasks"`
	Schedules     []models.Schedule        `yaml:"schedules"`

	byID map[string]*models.CommunityServer
}

// Load reads a catalog from path. An empty path yields a catalog with the default profile and no servers.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(DefaultProfile(), nil), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read community config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog from YAML
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse community config: %w", err)
	}
	if c.Profile.Name == "" {
		c.Profile = DefaultProfile()
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid community config: %w", err)
	}
	c.index()
	return &c, nil
}

// New builds a catalog in code
func New(profile models.CommunityProfile, servers []models.CommunityServer) *Catalog {
	c := &Catalog{Profile: profile, Servers: servers}
	c.index()
	return c
}

func (c *Catalog) validate() error {
	seen := make(map[string]struct{}, len(c.Servers))
	for _, s := range c.Servers {
		if s.ID == "" {
			return fmt.Errorf("server %q has no id", s.Name)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("duplicate server id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	for _, sch := range c.Schedules {
		if _, err := models.ParseVariant(string(sch.Variant)); err != nil {
			return fmt.Errorf("schedule %q: %w", sch.Name, err)
		}
		if sch.Cron == "" {
			return fmt.Errorf("schedule %q has no cron expression", sch.Name)
		}
	}
	return nil
}

// index maps servers by ID; the first entry wins on duplicates
func (c *Catalog) index() {
	c.byID = make(map[string]*models.CommunityServer, len(c.Servers))
	for i := range c.Servers {
		s := &c.Servers[i]
		if s.Channels == nil {
			s.Channels = map[string]string{}
		}
		if _, dup := c.byID[s.ID]; !dup {
			c.byID[s.ID] = s
		}
	}
}

// ServerID resolves a server name (case-insensitive) or ID.
// Unknown all-digit values are taken as raw Discord IDs.
func (c *Catalog) ServerID(nameOrID string) (string, error) {
	nameOrID = strings.TrimSpace(nameOrID)
	if _, ok := c.byID[nameOrID]; ok {
		return nameOrID, nil
	}
	for _, s := range c.Servers {
		if strings.EqualFold(s.Name, nameOrID) {
			return s.ID, nil
		}
	}
	if isSnowflake(nameOrID) {
		return nameOrID, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownServer, nameOrID)
}

// ChannelIDs resolves channel names or IDs within a server.
// A single "all" expands to every known channel, sorted by ID; unknown names pass through unchanged.
func (c *Catalog) ChannelIDs(serverID string, namesOrIDs []string) []string {
	server, ok := c.byID[serverID]
	if len(namesOrIDs) == 1 && strings.EqualFold(namesOrIDs[0], allChannels) {
		if !ok {
			return nil
		}
		ids := make([]string, 0, len(server.Channels))
		for id := range server.Channels {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		return ids
	}

	ids := make([]string, 0, len(namesOrIDs))
	for _, v := range namesOrIDs {
		ids = append(ids, c.channelID(server, strings.TrimSpace(v)))
	}
	return ids
}

func (c *Catalog) channelID(server *models.CommunityServer, nameOrID string) string {
	if server == nil {
		return nameOrID
	}
	if _, ok := server.Channels[nameOrID]; ok {
		return nameOrID
	}
	for id, name := range server.Channels {
		if strings.EqualFold(name, nameOrID) {
			return id
		}
	}
	return nameOrID
}

// Names returns the display names of a server and its channels, falling back to IDs
func (c *Catalog) Names(serverID string, channelIDs []string) (string, []string) {
	server, ok := c.byID[serverID]
	if !ok {
		return serverID, channelIDs
	}

	names := make([]string, 0, len(channelIDs))
	for _, id := range channelIDs {
		if name := server.Channels[id]; name != "" {
			names = append(names, name)
		} else {
			names = append(names, id)
		}
	}
	return server.Name, names
}

// ResolveChannelName looks up a channel name by server and channel ID
func (c *Catalog) ResolveChannelName(serverID, channelID string) (string, bool) {
	server, ok := c.byID[serverID]
	if !ok {
		return "", false
	}
	name, ok := server.Channels[channelID]
	return name, ok
}

// Server returns a known server by ID
func (c *Catalog) Server(serverID string) (models.CommunityServer, bool) {
	s, ok := c.byID[serverID]
	if !ok {
		return models.CommunityServer{}, false
	}
	return *s, true
}

func isSnowflake(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
