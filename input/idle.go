package input

import "github.com/CoolKrit/Ronin/component"

// Idle never asks for anything.
type Idle struct{}

func (Idle) Poll() component.Intent { return component.Intent{} }
