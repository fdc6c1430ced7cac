// Copyright 2018 The uwutoken Authors
// This file is part of the uwutoken library.
//
// The uwutoken library is free software: you can redistribute it and/or modify
// it under the terms of the MIT Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The uwutoken library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// MIT Lesser General Public License for more details.
//
// You should have received a copy of the MIT Lesser General Public License
// along with the uwutoken library. If not, see <https://mit-license.org/>.

package uwutoken

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

var (
	appname = "uwutoken"
	version = "0.1.0"
)

func CurrentVersion() string {
	return version
}

func VersionMajor() int {
	versionNames := strings.Split(version, ".")
	if len(versionNames) != 3 {
		return 0
	}
	num, err := strconv.ParseInt(versionNames[0], 10, 32)
	if err != nil {
		return 0
	}
	return int(num)
}

func VersionString() string {
	vs := "v" + CurrentVersion()
	osArch := runtime.GOOS + "/" + runtime.GOARCH
	return fmt.Sprintf("%s %s %s",
		appname, vs, osArch)
}

func GetAppName() string {
	return appname
}
