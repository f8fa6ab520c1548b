package fakeapi

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/j-veylop/engagement-dashboard-tui/internal/models"
)

var (
	channelNames = []string{
		"general", "random", "engineering", "support", "sales", "design",
		"releases", "ops-alerts", "marketing", "hiring", "security", "docs",
	}
	usernames = []string{
		"alice", "bruno", "carla", "diego", "erin", "farah", "gus", "helena",
	}
	roomTypes = []models.RoomType{models.RoomPublic, models.RoomPrivate, models.RoomDirect}
)

// Generate builds n synthetic channel records relative to now, ordered by
// message count descending. The same seed always yields the same records.
func Generate(n int, now time.Time, seed int64) []models.ChannelRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]models.ChannelRecord, 0, n)

	for i := 0; i < n; i++ {
		t := roomTypes[rng.Intn(len(roomTypes))]
		room := models.Room{
			ID:        fmt.Sprintf("room-%04d", i),
			Type:      t,
			TS:        now.Add(-time.Duration(30+rng.Intn(700)) * 24 * time.Hour).UTC().Truncate(time.Millisecond),
			UpdatedAt: now.Add(-time.Duration(rng.Intn(72)) * time.Hour).UTC().Truncate(time.Millisecond),
		}

		if t == models.RoomDirect {
			a := rng.Intn(len(usernames))
			b := (a + 1 + rng.Intn(len(usernames)-1)) % len(usernames)
			room.Usernames = []string{usernames[a], usernames[b]}
		} else {
			name := channelNames[i%len(channelNames)]
			if i >= len(channelNames) {
				name = fmt.Sprintf("%s-%d", name, i/len(channelNames))
			}
			room.Name = name
		}

		records = append(records, models.ChannelRecord{
			Room:             room,
			Messages:         rng.Intn(5000),
			DiffFromLastWeek: rng.Intn(201) - 100,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Messages > records[j].Messages
	})
	return records
}
