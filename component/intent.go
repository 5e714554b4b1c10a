package component

// Intent is one tick of player input: edge-triggered jump and attack, a held
// jump state and a continuous horizontal axis in [-1,1].
type Intent struct {
	Axis          float64
	JumpPressed   bool
	JumpHeld      bool
	AttackPressed bool
}

// IntentSource produces the player's intent once per variable tick.
type IntentSource interface {
	Poll() Intent
}
