package log

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
)

type Logger interface {
	Debugf(format string, args ...interface{})
	Debugln(args ...interface{})
	Infof(format string, args ...interface{})
	Infoln(args ...interface{})
	Warnf(format string, args ...interface{})
	Warnln(args ...interface{})
	Errorf(format string, args ...interface{})
	Errorln(args ...interface{})
	Writer() *io.PipeWriter
	WithField(key string, value interface{}) *logrus.Entry
	WithFields(fields logrus.Fields) *logrus.Entry
}

func DefaultLogger() Logger {
	logrus.SetLevel(logrus.InfoLevel)
	return logrus.StandardLogger()
}

// Setup configures the standard logger with our formatter on stderr.
func Setup(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&Formatter{})
	logrus.SetLevel(lvl)
	return nil
}

// New returns a standalone logger writing to w.
func New(level string, w io.Writer) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&Formatter{})
	l.SetLevel(lvl)
	return l, nil
}

// Discard is a logger that drops everything, for tests.
func Discard() Logger {
	l := logrus.New()
	l.SetOutput(ioutil.Discard)
	return l
}
