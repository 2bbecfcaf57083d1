// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package store

import "math"

func mathFloatBits(f float64) int64        { return int64(math.Float64bits(f)) }
func mathFloatFromBits(b int64) float64    { return math.Float64frombits(uint64(b)) }
