package models

import "strings"

// DiscordLocation extracts server and channel IDs from a message URL of the form
// https://discord.com/channels/<server>/<channel>/<message>
func DiscordLocation(url string) (serverID, channelID string) {
	parts := strings.Split(url, "/")
	if len(parts) > 4 {
		serverID = parts[4]
	}
	if len(parts) > 5 {
		channelID = parts[5]
	}
	return serverID, channelID
}

// DiscordURLPattern returns a LIKE pattern matching message URLs in a server
// and, when channelID is set, in a single channel.
func DiscordURLPattern(serverID, channelID string) string {
	if channelID == "" {
		return "%/channels/" + serverID + "/%"
	}
	return "%/channels/" + serverID + "/" + channelID + "/%"
}

// AccountDisplayName picks the best human-readable name for an account
func AccountDisplayName(id, username, name string) string {
	if username != "" {
		return username
	}
	if name != "" {
		return name
	}
	return id
}
