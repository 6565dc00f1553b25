// Package syncpolicy routes trip reads and writes between the remote store and the
// local fallback store. The id of a trip decides where it lives.
package syncpolicy

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Origin says which store owns a trip.
type Origin int

const (
	Remote Origin = iota
	Local
)

func (o Origin) String() string {
	if o == Local {
		return "local"
	}
	return "remote"
}

// Id markers of local trips. temp- ids are created by users, mock- ids are seeded.
const (
	TempPrefix = "temp-"
	SeedPrefix = "mock-"
)

// Ref is a trip id tagged with its origin.
type Ref struct {
	Origin Origin
	ID     string
}

// RefOf classifies id by its marker.
func RefOf(id string) Ref {
	if strings.HasPrefix(id, TempPrefix) || strings.HasPrefix(id, SeedPrefix) {
		return Ref{Origin: Local, ID: id}
	}
	return Ref{Origin: Remote, ID: id}
}

// IsLocal reports whether id belongs to the local store.
func IsLocal(id string) bool { return RefOf(id).Origin == Local }

// IsSeed reports whether the ref is one of the seeded sample trips.
func (r Ref) IsSeed() bool { return strings.HasPrefix(r.ID, SeedPrefix) }

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewLocalID returns temp-<unix millis>-<9 base36 chars>.
func NewLocalID(now time.Time) string {
	var b strings.Builder
	b.WriteString(TempPrefix)
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	b.WriteByte('-')
	for range 9 {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}

// NewRemoteID returns a fresh UUID for a remote row.
func NewRemoteID() string { return uuid.NewString() }

// NewID picks the id generator for origin.
func NewID(o Origin, now time.Time) string {
	if o == Local {
		return NewLocalID(now)
	}
	return NewRemoteID()
}
