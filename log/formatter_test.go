package log

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestFormatter_Format(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2021, 1, 2, 3, 4, 5, 0, time.UTC),
		Level:   logrus.InfoLevel,
		Message: "deployed contract",
		Data: logrus.Fields{
			"alias":   "uwu_token",
			"address": "0x1",
		},
	}
	out, err := (&Formatter{}).Format(entry)
	if err != nil {
		t.Fatal(err)
	}
	want := "2021-01-02T03:04:05Z INFO    Deployed contract address=0x1, alias=uwu_token\n"
	if string(out) != want {
		t.Fatalf("want %q, got %q", want, out)
	}
}

func TestNew(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	l, err := New("warn", buf)
	if err != nil {
		t.Fatal(err)
	}
	l.Infof("hidden")
	l.Warnf("shown %d", 1)
	if strings.Contains(buf.String(), "Hidden") {
		t.Fatalf("info leaked at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "WARNING Shown 1") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
	if _, err = New("loud", buf); err == nil {
		t.Fatal("expected invalid level error")
	}
}
