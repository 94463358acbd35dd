// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringchan

// StartAt places all four counters at pos, so tests can cross the 2^32
// wrap point without sending four billion elements.
func (b *Builder) StartAt(pos uint32) *Builder {
	b.opts.start = pos
	return b
}
