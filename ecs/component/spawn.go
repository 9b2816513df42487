package component

// SpawnSource records what created an entity.
type SpawnSource string

const (
	SpawnUser     SpawnSource = "user"
	SpawnWeather  SpawnSource = "weather"
	SpawnFragment SpawnSource = "fragment"
)

// Spawn is attached by the factory when a body is created.
type Spawn struct {
	Source SpawnSource
	Tick   uint64
}

var SpawnComponent = NewComponent[Spawn]("spawn")
