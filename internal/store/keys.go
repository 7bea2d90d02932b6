package store

// Keyspace layout. Entity ids are generated UUIDs and never contain '/'.
//
// - ev/{event_id}            -> Event JSON
// - evl/{list_id}            -> EventList JSON (membership kept separately)
// - evle/{list_id}/{event_id} -> EventListEntry JSON
//
// Membership entries use an explicit composite child key under their list id
// so a list record stays small no matter how long its sequence grows, and so
// a whole sequence is one bounded prefix scan.

var (
	sep         = byte('/')
	eventPrefix = []byte("ev/")
	listPrefix  = []byte("evl/")
	entryPrefix = []byte("evle/")
)

func eventKey(id string) []byte {
	k := make([]byte, 0, len(eventPrefix)+len(id))
	k = append(k, eventPrefix...)
	k = append(k, id...)
	return k
}

func listKey(id string) []byte {
	k := make([]byte, 0, len(listPrefix)+len(id))
	k = append(k, listPrefix...)
	k = append(k, id...)
	return k
}

func entryKey(listID, eventID string) []byte {
	k := make([]byte, 0, len(entryPrefix)+len(listID)+1+len(eventID))
	k = append(k, entryPrefix...)
	k = append(k, listID...)
	k = append(k, sep)
	k = append(k, eventID...)
	return k
}

// entriesPrefix bounds the membership keyspace of one list.
func entriesPrefix(listID string) []byte {
	k := make([]byte, 0, len(entryPrefix)+len(listID)+1)
	k = append(k, entryPrefix...)
	k = append(k, listID...)
	k = append(k, sep)
	return k
}
