package entity

import (
	"fmt"
	"sync"
)

// SessionState — состояние сессии съёмки и классификации.
type SessionState string

const (
	StateLoading      SessionState = "loading"       // модель ещё загружается
	StateReady        SessionState = "ready"         // можно делать снимок
	StateCapturing    SessionState = "capturing"     // ждём кадр от камеры
	StateClassifying  SessionState = "classifying"   // идёт инференс
	StateResultsShown SessionState = "results_shown" // показываем результат
)

// Snapshot — срез сессии для отображения. Передаётся подписчикам при каждом переходе.
type Snapshot struct {
	State      SessionState
	ModelReady bool
	Permission bool
	Lines      []string
}

// Session — конечный автомат сессии. Единственный источник истины о том,
// какие действия пользователя сейчас допустимы. Циклический, терминального
// состояния нет.
type Session struct {
	mu          sync.Mutex
	state       SessionState
	modelReady  bool
	permission  bool
	result      RankedResult
	subscribers []func(Snapshot)
}

// NewSession создаёт сессию в начальном состоянии Loading.
func NewSession() *Session {
	return &Session{state: StateLoading}
}

// Subscribe регистрирует получателя срезов. Подписчик вызывается
// синхронно после каждого перехода, вне блокировки сессии.
func (s *Session) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// State возвращает текущее состояние.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result возвращает последний результат классификации.
func (s *Session) Result() RankedResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Snapshot возвращает текущий срез сессии.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SetModelReady отмечает модель готовой. Флаг меняется ровно один раз,
// только из false в true. Если разрешение уже выдано, сессия переходит в Ready.
func (s *Session) SetModelReady() {
	s.mu.Lock()
	if s.modelReady {
		s.mu.Unlock()
		return
	}
	s.modelReady = true
	s.maybeReadyLocked()
	s.notify(s.snapshotLocked())
}

// GrantPermission фиксирует разрешение на камеру. Принимается в любом
// состоянии: условие ортогонально загрузке модели.
func (s *Session) GrantPermission() {
	s.mu.Lock()
	if s.permission {
		s.mu.Unlock()
		return
	}
	s.permission = true
	s.maybeReadyLocked()
	s.notify(s.snapshotLocked())
}

// maybeReadyLocked переводит Loading в Ready, когда выполнены оба условия.
func (s *Session) maybeReadyLocked() {
	if s.state == StateLoading && s.modelReady && s.permission {
		s.state = StateReady
	}
}

// BeginCapture переводит Ready в Capturing. Отклоняет действие, если модель
// не готова, нет разрешения или классификация уже идёт — второй снимок во
// время Capturing/Classifying игнорируется, а не ставится в очередь.
func (s *Session) BeginCapture() error {
	s.mu.Lock()
	if !s.modelReady {
		s.mu.Unlock()
		return ErrModelNotReady
	}
	if !s.permission {
		s.mu.Unlock()
		return ErrPermissionDenied
	}
	if s.state != StateReady {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: capture in state %s", ErrInvalidTransition, state)
	}
	s.state = StateCapturing
	s.notify(s.snapshotLocked())
	return nil
}

// CaptureFailed возвращает сессию из Capturing в Ready: кадр отброшен,
// можно снимать заново.
func (s *Session) CaptureFailed() {
	s.mu.Lock()
	if s.state != StateCapturing {
		s.mu.Unlock()
		return
	}
	s.state = StateReady
	s.notify(s.snapshotLocked())
}

// BeginClassify переводит Capturing в Classifying, когда камера отдала кадр.
func (s *Session) BeginClassify() error {
	s.mu.Lock()
	if s.state != StateCapturing {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: classify in state %s", ErrInvalidTransition, state)
	}
	s.state = StateClassifying
	s.notify(s.snapshotLocked())
	return nil
}

// ShowResults завершает классификацию. Успех и восстановимая ошибка оба
// попадают сюда: результат либо ранжированные метки, либо заглушка.
func (s *Session) ShowResults(result RankedResult) error {
	s.mu.Lock()
	if s.state != StateClassifying {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: show results in state %s", ErrInvalidTransition, state)
	}
	s.state = StateResultsShown
	s.result = result
	s.notify(s.snapshotLocked())
	return nil
}

// Reset возвращает сессию из ResultsShown в Ready и очищает результат.
// Во время незавершённой классификации сброс отклоняется, чтобы висящий
// прогон пайплайна не записал результат в уже сброшенную сессию.
func (s *Session) Reset() error {
	s.mu.Lock()
	if s.state != StateResultsShown {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: reset in state %s", ErrInvalidTransition, state)
	}
	s.state = StateReady
	s.result = RankedResult{}
	s.notify(s.snapshotLocked())
	return nil
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:      s.state,
		ModelReady: s.modelReady,
		Permission: s.permission,
		Lines:      s.result.Lines(),
	}
}

// notify рассылает срез подписчикам. Вызывается с захваченной блокировкой
// и сам её отпускает, чтобы подписчики могли обращаться к сессии.
func (s *Session) notify(snap Snapshot) {
	subs := make([]func(Snapshot), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
