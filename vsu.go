// vsu.go - 6-channel (5 wave + 1 noise) PCM sound unit.
//
// No original_source/ file documents the VSU in the detail instruction.rs
// and vip/mod.rs give the CPU and video chip, so this is grounded
// directly on spec.md §4.6 (channel register set, cycle-driven sample
// production, additive clamped mixing) plus the teacher's channel/
// envelope/noise-LFSR shape for a PCM synth (audio_chip.go, no longer
// present in this tree but followed here in spirit: per-channel state
// machines ticked once per output sample, not per CPU cycle).

package main

const (
	vsuChannelCount  = 6
	vsuNoiseChannel  = 5
	vsuWaveTableSize = 32
	vsuWaveTables    = 5

	vsuHostSampleRateHz = 41700 // matches the console's native DAC rate
)

type vsuEnvelopeDirection int

const (
	envelopeDecay vsuEnvelopeDirection = iota
	envelopeGrow
)

type vsuChannel struct {
	enabled bool

	intervalEnabled bool
	intervalValue   uint8 // 5-bit interval field; stored and read back only, no auto-off countdown is run
	intervalCounter int

	volumeLeft  uint8
	volumeRight uint8

	frequency uint16 // 11-bit

	envelopeEnabled   bool
	envelopeDirection vsuEnvelopeDirection
	envelopeStep      uint8
	envelopeInitial   uint8
	envelopeRepeat    bool
	envelopeLevel     uint8
	envelopeCounter   int

	waveformIndex uint8 // which of the 5 shared wave tables (wave channels only)

	noiseTap uint8 // noise channel only: LFSR tap select

	phaseAccumulatorNs int64
	waveformPosition   int

	lfsr uint16
}

// Vsu is the console's sound unit: five wave channels sharing a bank of
// waveform tables, plus a sixth noise channel driven by an LFSR.
type Vsu struct {
	channels [vsuChannelCount]vsuChannel

	waveTables [vsuWaveTables][vsuWaveTableSize]uint8

	sampleAccumulatorNs int64
}

func NewVsu() *Vsu {
	v := &Vsu{}
	for i := range v.channels {
		v.channels[i].lfsr = 0x0001
	}
	return v
}

// ReadRegister and WriteRegister address one channel's register block,
// laid out in 0x40-byte strides: channel i's registers start at
// i*0x40 (SxINT, SxLRV, SxFQL, SxFQH, SxEV0, SxEV1 and, at 0x18, SxRAM
// for wave channels; the noise channel uses that same 0x18 slot for its
// tap select).
func (v *Vsu) ReadRegister(offset uint32) uint8 {
	ch, reg := v.decodeRegister(offset)
	if ch == nil {
		return 0
	}
	switch reg {
	case 0x00:
		return boolByte(ch.intervalEnabled, 5) | boolByte(ch.enabled, 7) | ch.intervalValue
	case 0x04:
		return ch.volumeLeft<<4 | ch.volumeRight
	case 0x08:
		return uint8(ch.frequency)
	case 0x0C:
		return uint8(ch.frequency >> 8)
	case 0x10:
		return ch.envelopeInitial<<4 | boolByte(ch.envelopeRepeat, 1) | uint8(ch.envelopeDirection)
	case 0x14:
		return ch.envelopeStep&0x07 | boolByte(ch.envelopeEnabled, 5)
	case 0x18:
		if v.isNoiseChannel(ch) {
			return ch.noiseTap
		}
		return ch.waveformIndex
	}
	return 0
}

func (v *Vsu) WriteRegister(offset uint32, value uint8) {
	ch, reg := v.decodeRegister(offset)
	if ch == nil {
		return
	}
	switch reg {
	case 0x00:
		ch.enabled = value&0x80 != 0
		ch.intervalEnabled = value&0x20 != 0
		ch.intervalValue = value & 0x1F
		if ch.enabled {
			ch.waveformPosition = 0
			ch.phaseAccumulatorNs = 0
			ch.envelopeLevel = ch.envelopeInitial
		}
	case 0x04:
		ch.volumeLeft = value >> 4
		ch.volumeRight = value & 0x0F
	case 0x08:
		ch.frequency = (ch.frequency &^ 0x00FF) | uint16(value)
	case 0x0C:
		ch.frequency = (ch.frequency &^ 0x0700) | uint16(value&0x07)<<8
	case 0x10:
		ch.envelopeInitial = value >> 4
		ch.envelopeRepeat = value&0x02 != 0
		if value&0x01 != 0 {
			ch.envelopeDirection = envelopeGrow
		} else {
			ch.envelopeDirection = envelopeDecay
		}
	case 0x14:
		ch.envelopeStep = value & 0x07
		ch.envelopeEnabled = value&0x20 != 0
	case 0x18:
		if v.isNoiseChannel(ch) {
			ch.noiseTap = value & 0x07
		} else {
			ch.waveformIndex = value & 0x07
		}
	}
}

func (v *Vsu) isNoiseChannel(ch *vsuChannel) bool { return ch == &v.channels[vsuNoiseChannel] }

func (v *Vsu) decodeRegister(offset uint32) (*vsuChannel, uint32) {
	index := offset / 0x40
	if index >= vsuChannelCount {
		return nil, 0
	}
	return &v.channels[index], offset % 0x40
}

func boolByte(b bool, shift uint) uint8 {
	if b {
		return 1 << shift
	}
	return 0
}

const vsuWaveTableBase = 0x00000200

// ReadByte and WriteByte dispatch VSU-region addresses between the
// per-channel register blocks (below vsuWaveTableBase) and the shared
// waveform table bank (at and above it, 0x80 bytes per table).
func (v *Vsu) ReadByte(addr uint32) uint8 {
	if addr < vsuWaveTableBase {
		return v.ReadRegister(addr)
	}
	rel := addr - vsuWaveTableBase
	return v.ReadWaveTable(int(rel/0x80), int(rel%0x80)/4)
}

func (v *Vsu) WriteByte(addr uint32, value uint8) {
	if addr < vsuWaveTableBase {
		v.WriteRegister(addr, value)
		return
	}
	rel := addr - vsuWaveTableBase
	v.WriteWaveTable(int(rel/0x80), int(rel%0x80)/4, value)
}

// VSU registers and wave samples are byte-sized; halfword/word
// accesses only assemble/split the low bytes, matching how the console
// treats a VSU access wider than a byte.
func (v *Vsu) ReadHalfword(addr uint32) uint16 { return uint16(v.ReadByte(addr)) }
func (v *Vsu) ReadWord(addr uint32) uint32     { return uint32(v.ReadByte(addr)) }
func (v *Vsu) WriteHalfword(addr uint32, value uint16) { v.WriteByte(addr, uint8(value)) }
func (v *Vsu) WriteWord(addr uint32, value uint32)     { v.WriteByte(addr, uint8(value)) }

// WriteWaveTable and ReadWaveTable expose the five shared 32-byte
// waveform tables (6-bit PCM amplitudes, one per byte).
func (v *Vsu) WriteWaveTable(table int, index int, sample uint8) {
	if table < 0 || table >= vsuWaveTables || index < 0 || index >= vsuWaveTableSize {
		return
	}
	v.waveTables[table][index] = sample & 0x3F
}

func (v *Vsu) ReadWaveTable(table int, index int) uint8 {
	if table < 0 || table >= vsuWaveTables || index < 0 || index >= vsuWaveTableSize {
		return 0
	}
	return v.waveTables[table][index]
}

// Cycles advances every enabled channel by n CPU cycles, accumulating
// toward the host sample period, and pushes one mixed stereo frame to
// sink whenever a sample period elapses.
func (v *Vsu) Cycles(n int, sink AudioSink) {
	ns := int64(n) * cpuCycleNsVip
	v.sampleAccumulatorNs += ns
	samplePeriodNs := int64(1000000000) / int64(vsuHostSampleRateHz)
	for v.sampleAccumulatorNs >= samplePeriodNs {
		v.sampleAccumulatorNs -= samplePeriodNs
		left, right := v.mixOneSample()
		sink.Push(AudioFrame{Left: left, Right: right})
	}
}

func (v *Vsu) mixOneSample() (int16, int16) {
	var left, right int32
	for i := range v.channels {
		ch := &v.channels[i]
		if !ch.enabled {
			continue
		}
		v.advanceEnvelope(ch)
		sample := v.channelSample(i, ch)
		amplitude := int32(sample) * int32(ch.envelopeLevel)
		left += amplitude * int32(ch.volumeLeft) / (63 * 15)
		right += amplitude * int32(ch.volumeRight) / (63 * 15)
	}
	return clampSample16(left), clampSample16(right)
}

func (v *Vsu) channelSample(index int, ch *vsuChannel) int8 {
	if ch.frequency == 0 {
		return 0
	}
	stepHz := float64(5000000) / float64(2048-int(ch.frequency))
	samplePeriodNs := int64(1000000000) / int64(vsuHostSampleRateHz)
	stepsPerSample := stepHz * float64(samplePeriodNs) / 1e9

	if index == vsuNoiseChannel {
		ch.phaseAccumulatorNs += int64(stepsPerSample * 1000)
		for ch.phaseAccumulatorNs >= 1000 {
			ch.phaseAccumulatorNs -= 1000
			v.advanceLfsr(ch)
		}
		if ch.lfsr&1 != 0 {
			return 31
		}
		return -31
	}

	ch.waveformPosition = (ch.waveformPosition + 1) % vsuWaveTableSize
	raw := v.waveTables[ch.waveformIndex%vsuWaveTables][ch.waveformPosition]
	return int8(raw) - 32
}

func (v *Vsu) advanceLfsr(ch *vsuChannel) {
	tapBit := (ch.lfsr >> ch.noiseTap) & 1
	feedback := (ch.lfsr & 1) ^ tapBit
	ch.lfsr = (ch.lfsr >> 1) | (feedback << 14)
}

func (v *Vsu) advanceEnvelope(ch *vsuChannel) {
	if !ch.envelopeEnabled || ch.envelopeStep == 0 {
		return
	}
	ch.envelopeCounter++
	if ch.envelopeCounter < int(ch.envelopeStep)*vsuHostSampleRateHz/64 {
		return
	}
	ch.envelopeCounter = 0
	switch ch.envelopeDirection {
	case envelopeGrow:
		if ch.envelopeLevel < 15 {
			ch.envelopeLevel++
		} else if ch.envelopeRepeat {
			ch.envelopeLevel = 0
		}
	case envelopeDecay:
		if ch.envelopeLevel > 0 {
			ch.envelopeLevel--
		} else if ch.envelopeRepeat {
			ch.envelopeLevel = 15
		}
	}
}

func clampSample16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
