package component

import "github.com/milk9111/weatherbox/material"

// Material tags a body with the material it was built from. The provider
// never reads it.
type Material struct {
	ID    material.ID
	Token string
}

var MaterialComponent = NewComponent[Material]("material")
