package models

import (
	"strings"
	"time"
)

// RoomType is the single-letter room kind reported by the server.
type RoomType string

const (
	// RoomDirect is a direct message between users.
	RoomDirect RoomType = "d"
	// RoomPrivate is a private channel (group).
	RoomPrivate RoomType = "p"
	// RoomPublic is a public channel.
	RoomPublic RoomType = "c"
)

// Glyph returns the icon shown before a room name.
// Rooms of unknown kind get no glyph.
func (t RoomType) Glyph() string {
	switch t {
	case RoomDirect:
		return "@"
	case RoomPrivate:
		return "🔒"
	case RoomPublic:
		return "#"
	default:
		return ""
	}
}

// Room is the room descriptor embedded in each channel record.
type Room struct {
	ID        string    `json:"_id,omitempty"`
	Type      RoomType  `json:"t"`
	Name      string    `json:"name,omitempty"`
	Usernames []string  `json:"usernames,omitempty"`
	TS        time.Time `json:"ts"`
	UpdatedAt time.Time `json:"_updatedAt"`
}

// ChannelRecord is one entry of the channels list as returned by the server.
type ChannelRecord struct {
	Room             Room `json:"room"`
	Messages         int  `json:"messages"`
	DiffFromLastWeek int  `json:"diffFromLastWeek"`
}

// ChannelsResponse is the body of the channels list endpoint.
type ChannelsResponse struct {
	Channels []ChannelRecord `json:"channels"`
	Count    int             `json:"count"`
	Offset   int             `json:"offset"`
	Total    int             `json:"total"`
	Success  bool            `json:"success"`
}

// ChannelRow is the display-ready form of a channel record.
type ChannelRow struct {
	Type              RoomType
	DisplayName       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	MessagesCount     int
	MessagesVariation int
}

// DirectNameSeparator joins participant usernames for unnamed rooms.
const DirectNameSeparator = " × "

// DisplayName returns the room name, or the joined participant list when
// the room has no name.
func (r Room) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return strings.Join(r.Usernames, DirectNameSeparator)
}

// MapChannelRows turns a fetched payload into display rows.
// A nil response yields nil (nothing fetched yet); a fetched response
// always yields a non-nil slice, possibly empty.
func MapChannelRows(resp *ChannelsResponse) []ChannelRow {
	if resp == nil {
		return nil
	}

	rows := make([]ChannelRow, 0, len(resp.Channels))
	for _, c := range resp.Channels {
		rows = append(rows, ChannelRow{
			Type:              c.Room.Type,
			DisplayName:       c.Room.DisplayName(),
			CreatedAt:         c.Room.TS,
			UpdatedAt:         c.Room.UpdatedAt,
			MessagesCount:     c.Messages,
			MessagesVariation: c.DiffFromLastWeek,
		})
	}
	return rows
}
