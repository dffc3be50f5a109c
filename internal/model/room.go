package model

import "time"

// Room organizational unit (department/team); rooms nest via ParentID
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parentId"` // nil for top-level rooms
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoomNode room with resolved children, used by the tree endpoint
type RoomNode struct {
	Room
	Children []*RoomNode `json:"children"`
}
