package domain

import "time"

// MonthRange devuelve [inicio, fin) del mes calendario que contiene a t,
// en la zona horaria de t. Es el límite de período de la cuota mensual:
// el contador no se resetea con un job; el corte se aplica al leer.
func MonthRange(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0)
	return start, end
}
