package gds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// GDSII record types.
const (
	recHeader       = 0x00
	recBgnLib       = 0x01
	recLibName      = 0x02
	recUnits        = 0x03
	recEndLib       = 0x04
	recBgnStr       = 0x05
	recStrName      = 0x06
	recEndStr       = 0x07
	recBoundary     = 0x08
	recPath         = 0x09
	recSRef         = 0x0A
	recARef         = 0x0B
	recText         = 0x0C
	recLayer        = 0x0D
	recDatatype     = 0x0E
	recWidth        = 0x0F
	recXY           = 0x10
	recEndEl        = 0x11
	recSName        = 0x12
	recColRow       = 0x13
	recTextType     = 0x16
	recPresentation = 0x17
	recString       = 0x19
	recSTrans       = 0x1A
	recMag          = 0x1B
	recAngle        = 0x1C
	recPathType     = 0x21
)

// Payload data type codes carried in the low byte of the second header
// word.
const (
	dataNone   = 0x00
	dataBitArr = 0x01
	dataInt16  = 0x02
	dataInt32  = 0x03
	dataReal8  = 0x05
	dataASCII  = 0x06
)

// ErrTruncated reports a stream that ended in the middle of a record.
var ErrTruncated = errors.New("truncated record stream")

var recordNames = map[byte]string{
	recHeader: "HEADER", recBgnLib: "BGNLIB", recLibName: "LIBNAME",
	recUnits: "UNITS", recEndLib: "ENDLIB", recBgnStr: "BGNSTR",
	recStrName: "STRNAME", recEndStr: "ENDSTR", recBoundary: "BOUNDARY",
	recPath: "PATH", recSRef: "SREF", recARef: "AREF", recText: "TEXT",
	recLayer: "LAYER", recDatatype: "DATATYPE", recWidth: "WIDTH",
	recXY: "XY", recEndEl: "ENDEL", recSName: "SNAME", recColRow: "COLROW",
	recTextType: "TEXTTYPE", recPresentation: "PRESENTATION",
	recString: "STRING", recSTrans: "STRANS", recMag: "MAG",
	recAngle: "ANGLE", recPathType: "PATHTYPE",
}

func recordName(rtype byte) string {
	if name, ok := recordNames[rtype]; ok {
		return name
	}
	return fmt.Sprintf("0x%02X", rtype)
}

// recordWriter frames records onto an output stream. Write errors and
// real-encoding errors stick: once one occurs, further writes are
// no-ops and Err returns it.
type recordWriter struct {
	w   io.Writer
	err error
}

func (rw *recordWriter) Err() error {
	return rw.err
}

func (rw *recordWriter) write(rtype, dtype byte, payload []byte) {
	if rw.err != nil {
		return
	}
	total := 4 + len(payload)
	if total > math.MaxUint16 {
		rw.err = fmt.Errorf("record %s payload too large (%d bytes)", recordName(rtype), len(payload))
		return
	}
	var hdr [4]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(total))
	hdr[2] = rtype
	hdr[3] = dtype
	if _, err := rw.w.Write(hdr[:]); err != nil {
		rw.err = err
		return
	}
	if len(payload) == 0 {
		return
	}
	if _, err := rw.w.Write(payload); err != nil {
		rw.err = err
	}
}

func (rw *recordWriter) writeEmpty(rtype byte) {
	rw.write(rtype, dataNone, nil)
}

func (rw *recordWriter) writeInt16(rtype byte, vals ...int) {
	payload := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(payload[2*i:], uint16(int16(v)))
	}
	rw.write(rtype, dataInt16, payload)
}

func (rw *recordWriter) writeUint16(rtype byte, vals ...uint16) {
	payload := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(payload[2*i:], v)
	}
	rw.write(rtype, dataBitArr, payload)
}

func (rw *recordWriter) writeInt32(rtype byte, vals ...int32) {
	payload := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(payload[4*i:], uint32(v))
	}
	rw.write(rtype, dataInt32, payload)
}

func (rw *recordWriter) writeReal8(rtype byte, vals ...float64) {
	payload := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		enc, err := encodeReal(v)
		if err != nil {
			if rw.err == nil {
				rw.err = err
			}
			return
		}
		payload = append(payload, enc[:]...)
	}
	rw.write(rtype, dataReal8, payload)
}

// writeString emits an ASCII record, NUL-padded to an even length.
func (rw *recordWriter) writeString(rtype byte, s string) {
	if len(s)%2 != 0 {
		s += "\x00"
	}
	rw.write(rtype, dataASCII, []byte(s))
}

// record is one framed unit of a GDSII stream.
type record struct {
	rtype byte
	dtype byte
	data  []byte
}

// readRecord reads the next record. It returns io.EOF only at a clean
// record boundary; a stream that ends mid-record is ErrTruncated.
func readRecord(r io.Reader) (record, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if err == io.EOF {
			return record{}, io.EOF
		}
		return record{}, fmt.Errorf("%w: short record header", ErrTruncated)
	}
	size := int(binary.BigEndian.Uint16(hdr[0:2]))
	if size < 4 {
		return record{}, fmt.Errorf("invalid record length %d", size)
	}
	rec := record{rtype: hdr[2], dtype: hdr[3]}
	if size > 4 {
		rec.data = make([]byte, size-4)
		if _, err := io.ReadFull(r, rec.data); err != nil {
			return record{}, fmt.Errorf("%w: short %s record", ErrTruncated, recordName(rec.rtype))
		}
	}
	return rec, nil
}

func (r record) uint16s() []int {
	out := make([]int, len(r.data)/2)
	for i := range out {
		out[i] = int(binary.BigEndian.Uint16(r.data[2*i:]))
	}
	return out
}

func (r record) int16s() []int {
	out := make([]int, len(r.data)/2)
	for i := range out {
		out[i] = int(int16(binary.BigEndian.Uint16(r.data[2*i:])))
	}
	return out
}

func (r record) int32s() []int32 {
	out := make([]int32, len(r.data)/4)
	for i := range out {
		out[i] = int32(binary.BigEndian.Uint32(r.data[4*i:]))
	}
	return out
}

func (r record) reals() []float64 {
	out := make([]float64, len(r.data)/8)
	for i := range out {
		out[i] = decodeReal(r.data[8*i : 8*i+8])
	}
	return out
}

// text returns the payload as a string with trailing NUL padding removed.
func (r record) text() string {
	return strings.TrimRight(string(r.data), "\x00")
}
