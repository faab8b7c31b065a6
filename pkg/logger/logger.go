package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// LogrusLogger implementa Logger sobre logrus, com saída em JSON
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogger cria um Logger no nível informado ("debug", "info", "warn", "error").
// Nível inválido cai para info.
func NewLogger(level string) Logger {
	return NewLoggerWithOutput(level, os.Stdout)
}

// NewLoggerWithOutput permite direcionar a saída (usado nos testes)
func NewLoggerWithOutput(level string, out io.Writer) Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

// WithFields devolve um logger com campos fixos (ex: "component") quando a
// implementação suporta; senão devolve o próprio l
func WithFields(l Logger, keysAndValues ...interface{}) Logger {
	if w, ok := l.(interface {
		With(keysAndValues ...interface{}) Logger
	}); ok {
		return w.With(keysAndValues...)
	}
	return l
}

// With devolve um logger com campos fixos, ex: módulo
func (l *LogrusLogger) With(keysAndValues ...interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(fields(keysAndValues))}
}

// Info registra uma mensagem de informação
func (l *LogrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Info(msg)
}

// Error registra uma mensagem de erro
func (l *LogrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Error(msg)
}

// Debug registra uma mensagem de debug
func (l *LogrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

// Warn registra uma mensagem de aviso
func (l *LogrusLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Warn(msg)
}

// fields converte pares chave/valor em logrus.Fields. Chave sem valor
// recebe "MISSING"; erros viram texto.
func fields(keysAndValues []interface{}) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		if i+1 >= len(keysAndValues) {
			f[key] = "MISSING"
			break
		}

		value := keysAndValues[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		f[key] = value
	}
	return f
}

// Nop descarta tudo; útil em testes
type Nop struct{}

func (Nop) Info(string, ...interface{})  {}
func (Nop) Error(string, ...interface{}) {}
func (Nop) Debug(string, ...interface{}) {}
func (Nop) Warn(string, ...interface{})  {}
