package ecs

// UpdateFrame is handed to every system once per frame.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, elapsed float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
