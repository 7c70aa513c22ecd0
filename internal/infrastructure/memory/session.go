package memory

// session ata un repositorio al store. Fuera de una transacción cada operación
// toma el mutex; dentro de una tx el runner ya lo tiene, así que los repos
// atados a la tx no vuelven a bloquear.
type session struct {
	store *Store
	tx    bool
}

// lock toma el mutex si el repo opera fuera de una tx. Uso: defer s.lock()().
func (s session) lock() func() {
	if s.tx {
		return func() {}
	}
	s.store.mu.Lock()
	return s.store.mu.Unlock
}

// paginate aplica LIMIT/OFFSET sobre un slice ya ordenado.
func paginate[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}
