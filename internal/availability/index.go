// Package availability tracks, per room, the date ranges held by active
// bookings and answers overlap queries. Reserve is an atomic
// check-and-insert under a per-room critical section, so two concurrent
// requests for the same room can never both observe "free".
package availability

import (
	"context"
	"fmt"
	"sync"

	"staybook/internal/domain"
)

type hold struct {
	bookingID string
	r         domain.DateRange
}

type roomHolds struct {
	mu    sync.Mutex
	holds []hold
}

// Index is an in-process projection of the repository's active bookings.
// It is rebuilt from storage at startup; within the process it is the single
// gate for reservations.
type Index struct {
	mu    sync.RWMutex
	rooms map[string]*roomHolds
}

func New() *Index {
	return &Index{rooms: make(map[string]*roomHolds)}
}

func (ix *Index) room(roomID string) *roomHolds {
	ix.mu.RLock()
	rh := ix.rooms[roomID]
	ix.mu.RUnlock()
	if rh != nil {
		return rh
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if rh = ix.rooms[roomID]; rh == nil {
		rh = &roomHolds{}
		ix.rooms[roomID] = rh
	}
	return rh
}

// Reserve fails with ErrConflict if r overlaps any existing hold on the
// room; otherwise it records the hold. Check and insert happen under the
// room's lock.
func (ix *Index) Reserve(ctx context.Context, roomID string, r domain.DateRange, bookingID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rh := ix.room(roomID)
	rh.mu.Lock()
	defer rh.mu.Unlock()
	for _, h := range rh.holds {
		if h.r.Overlaps(r) {
			return fmt.Errorf("%w: room %s is booked for %s", domain.ErrConflict, roomID, h.r)
		}
	}
	rh.holds = append(rh.holds, hold{bookingID: bookingID, r: r})
	return nil
}

// Release drops the hold owned by bookingID. Already-released holds are a
// no-op, which makes duplicate cancellation retries safe. The operation is
// purely in-memory and always runs to completion: callers invoke it after a
// status transition has been persisted, so honoring a cancelled request
// context here would strand the hold.
func (ix *Index) Release(_ context.Context, roomID, bookingID string) error {
	rh := ix.room(roomID)
	rh.mu.Lock()
	defer rh.mu.Unlock()
	for i, h := range rh.holds {
		if h.bookingID == bookingID {
			rh.holds = append(rh.holds[:i], rh.holds[i+1:]...)
			return nil
		}
	}
	return nil
}

// Rebuild replaces the index contents with the given holds. Called once at
// startup with the repository's active bookings, before the index is shared.
func (ix *Index) Rebuild(holds []domain.RoomHold) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.rooms = make(map[string]*roomHolds, len(holds))
	for _, h := range holds {
		rh := ix.rooms[h.RoomID]
		if rh == nil {
			rh = &roomHolds{}
			ix.rooms[h.RoomID] = rh
		}
		rh.holds = append(rh.holds, hold{bookingID: h.BookingID, r: h.Range})
	}
}

// Holds reports how many ranges are currently held for a room.
func (ix *Index) Holds(roomID string) int {
	rh := ix.room(roomID)
	rh.mu.Lock()
	defer rh.mu.Unlock()
	return len(rh.holds)
}
