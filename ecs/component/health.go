package component

// Health is shared by every damageable variant.
type Health struct {
	Current float64
	Max     float64
}

var HealthComponent = NewComponent[Health]()

// TakeDamage subtracts amount, clamping at zero, and reports death.
// Negative amounts are ignored.
func (h *Health) TakeDamage(amount float64) bool {
	if h == nil {
		return false
	}
	if amount > 0 {
		h.Current -= amount
	}
	if h.Current < 0 {
		h.Current = 0
	}
	return h.Current <= 0
}

// Heal adds amount without exceeding Max.
func (h *Health) Heal(amount float64) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

func (h *Health) Dead() bool {
	return h != nil && h.Current <= 0
}

func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}
