package analyzing

// groupKey identifica um grupo cuja chave pode ser nula (nulo forma o próprio grupo)
type groupKey struct {
	null  bool
	value string
}

func keyOf(s *string) groupKey {
	if s == nil {
		return groupKey{null: true}
	}
	return groupKey{value: *s}
}

func (k groupKey) ptr() *string {
	if k.null {
		return nil
	}
	v := k.value
	return &v
}

// lessKey ordena chaves com o nulo primeiro
func lessKey(a, b *string) bool {
	switch {
	case a == nil && b == nil:
		return false
	case a == nil:
		return true
	case b == nil:
		return false
	default:
		return *a < *b
	}
}
