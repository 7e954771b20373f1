package service

import "time"

func (s *wizardService) sweepLoop() {
	period := max(s.ttl/2, minSweepPeriod)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

// sweep cancels and forgets every wizard idle for longer than the TTL.
func (s *wizardService) sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	var expired []*session
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			expired = append(expired, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range expired {
		sess.wizard.Cancel()
		s.log.Info("Wizard session expired", "wizard_id", sess.wizard.ID())
	}
	return len(expired)
}
