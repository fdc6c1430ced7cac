package common

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
)

func Safeclose(fn func() error) {
	if err := fn(); err != nil {
		logrus.Error(err)
	}
}

// Objcopy copies src into dst through their JSON encodings.
func Objcopy(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	bs, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(bs, dst)
}
