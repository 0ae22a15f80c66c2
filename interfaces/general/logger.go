package general

// Logger is the leveled logger shared by services and adapters.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}
