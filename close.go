package assetkit

import (
	"context"
	"errors"
)

func (m *Manager) onDisposeError(key string, err error) {
	m.logger.LogDisposeError(context.Background(), key, err)

	m.disposeMu.Lock()
	defer m.disposeMu.Unlock()
	if m.collecting {
		m.disposeErrs = append(m.disposeErrs, err)
	}
}

// Close unloads every asset and rejects further loads. It returns the errors
// of values that failed to close. Close is idempotent.
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}
	var err error
	m.closeOnce.Do(func() {
		m.closed.Store(true)

		m.disposeMu.Lock()
		m.collecting = true
		m.disposeMu.Unlock()

		m.UnloadAll()

		m.disposeMu.Lock()
		err = errors.Join(m.disposeErrs...)
		m.collecting = false
		m.disposeErrs = nil
		m.disposeMu.Unlock()
	})
	return err
}
