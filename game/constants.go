// Package game holds the demo itself: the block, tile map and camera
// entities and the systems that move the camera and resolve the cursor.
package game

const (
	BlockWidth  = 4.0
	BlockHeight = 16.0

	ArenaWidth  = 100.0
	ArenaHeight = 100.0

	// MapWidth and MapHeight are the tile grid size in cells.
	MapWidth  = 32
	MapHeight = 32

	TileWidth  = ArenaWidth / MapWidth
	TileHeight = ArenaHeight / MapHeight
)

// Camera tuning.
const (
	PanSpeed         = 50.0 // world units per second at zoom 1
	ZoomSpeed        = 1.5  // e-folds per second
	MinZoom          = 0.25
	MaxZoom          = 4.0
	RecenterDuration = 0.4 // seconds
)

// Axis and action names read from the input bindings.
const (
	AxisCameraX    = "camera_x"
	AxisCameraY    = "camera_y"
	AxisCameraZoom = "camera_scale"

	ActionCameraCenter = "camera_center"
	ActionToggleDebug  = "toggle_debug"
	ActionQuit         = "quit"
)

// System names used for ordering.
const (
	CameraSystemName   = "camera_system"
	RaycastSystemName  = "mouse_raycast_system"
	PickSyncSystemName = "pick_sync_system"
	HoverLogSystemName = "hover_log_system"
)
