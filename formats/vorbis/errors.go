// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotOgg indicates data that is not a readable Ogg Vorbis stream.
var ErrNotOgg = errors.New("not an Ogg Vorbis stream")
