package ecs

import "strconv"

// Entity is the id the physics provider assigns to a body. Ids are never
// reused while the provider lives.
type Entity uint64

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
