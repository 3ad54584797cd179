package state

import "fmt"

// Key layout of the ledger. Identifiers are rendered as fixed-width hex so the
// composite keys cannot collide regardless of the id values.
//
//	accounts/<addr>                    -> storedAccount
//	projects/counter                   -> uint64
//	projects/<id>                      -> storedProject
//	milestones/<projectId>/count       -> uint64
//	milestones/<projectId>/<id>        -> storedMilestone

func accountKey(addr []byte) []byte {
	return []byte(fmt.Sprintf("accounts/%x", addr))
}

func projectCounterKey() []byte {
	return []byte("projects/counter")
}

func projectKey(id uint64) []byte {
	return []byte(fmt.Sprintf("projects/%016x", id))
}

func milestoneCountKey(projectID uint64) []byte {
	return []byte(fmt.Sprintf("milestones/%016x/count", projectID))
}

func milestoneKey(projectID, id uint64) []byte {
	return []byte(fmt.Sprintf("milestones/%016x/%016x", projectID, id))
}
