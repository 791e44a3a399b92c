package sim

// jump starts a jump when the player is standing on a platform.
func (p *Player) jump(params Params) bool {
	if !p.Grounded {
		return false
	}
	p.Vel.Y = params.JumpStrength
	p.Grounded = false
	return true
}

// move applies gravity and horizontal input, then integrates position.
func (p *Player) move(in Input, params Params) {
	p.Vel.Y += params.Gravity

	switch {
	case in.Left:
		p.Vel.X = -params.Speed
	case in.Right:
		p.Vel.X = params.Speed
	default:
		p.Vel.X = 0
	}

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
}

// fellOut reports whether the player's bottom edge is below the playfield.
func (p *Player) fellOut(params Params) bool {
	return p.Pos.Y+p.H > params.PlayfieldH
}
