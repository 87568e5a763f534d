package entities

import (
	"sort"
	"strconv"
)

// ParticipationRecord is the local trace of a confirmed participation.
// EventID is carried by the map key and is not serialized.
type ParticipationRecord struct {
	EventID   int64  `json:"-"`
	Email     string `json:"email"`
	Timestamp int64  `json:"ts"` // unix milliseconds
}

// ParticipationMap maps a decimal event id to its participation record.
type ParticipationMap map[string]ParticipationRecord

// ParticipationKey formats an event id as a map key.
func ParticipationKey(eventID int64) string {
	return strconv.FormatInt(eventID, 10)
}

// Has reports whether a participation is recorded for the event.
func (m ParticipationMap) Has(eventID int64) bool {
	_, ok := m[ParticipationKey(eventID)]
	return ok
}

// Get returns the record of the event with its EventID filled in.
func (m ParticipationMap) Get(eventID int64) (ParticipationRecord, bool) {
	rec, ok := m[ParticipationKey(eventID)]
	if !ok {
		return ParticipationRecord{}, false
	}
	rec.EventID = eventID
	return rec, true
}

// Put inserts or overwrites the record of rec.EventID.
func (m ParticipationMap) Put(rec ParticipationRecord) {
	m[ParticipationKey(rec.EventID)] = rec
}

// Remove deletes the record of the event and reports whether it existed.
func (m ParticipationMap) Remove(eventID int64) bool {
	key := ParticipationKey(eventID)
	if _, ok := m[key]; !ok {
		return false
	}
	delete(m, key)
	return true
}

// EventIDs returns the ids of the map in ascending order. Keys that are not
// positive integers are skipped.
func (m ParticipationMap) EventIDs() []int64 {
	ids := make([]int64, 0, len(m))
	for key := range m {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ChangeKind tells subscribers what happened to the participation map.
type ChangeKind string

const (
	ChangeConfirmed ChangeKind = "confirmed"
	ChangeCancelled ChangeKind = "cancelled"
	ChangeExternal  ChangeKind = "external" // written by another client sharing the storage
)

// ParticipationChange is published on the bus after every participation map mutation.
// EventID is zero for external changes.
type ParticipationChange struct {
	EventID int64
	Kind    ChangeKind
}
