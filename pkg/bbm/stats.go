package bbm

// Stats summarizes a compiled model.
type Stats struct {
	Bones      int
	Cubes      int
	Items      int
	Keyframes  int
	Animations int
}

// Stats counts the contents of the model.
func (m *Model) Stats() Stats {
	s := Stats{Animations: len(m.Animations)}
	if m.Root == nil {
		return s
	}
	m.Root.Walk(func(b *Bone) {
		s.Bones++
		s.Cubes += len(b.Cubes)
		s.Items += len(b.Items)
		for _, data := range b.Animations {
			s.Keyframes += len(data.Position) + len(data.Rotation) + len(data.Scale)
		}
	})
	return s
}
