// Package uart drives the 16550 UART at platform.UARTBase: the kernel's
// only console. Every access is polled; the kernel never blocks waiting
// on UART interrupts (sie's receive/transmit bits are enabled at boot but
// nothing services them).
package uart

import (
	"rvcore/kernel/platform"
	"unsafe"
)

const (
	regRBRTHR = 0 // receiver buffer (read) / transmit holding (write)
	regIER    = 1
	regFCR    = 2 // write: FIFO control; read: interrupt identification
	regLCR    = 3
	regLSR    = 5

	lsrThrEmpty = 1 << 5
	lsrRBRReady = 1 << 0

	lcrEightBits = 3
	lcrDLABSet   = 1 << 7

	fcrFIFOEnable = 1
	fcrFIFOClear  = 3 << 1

	ierRXEnable = 1 << 0
	ierTXEnable = 1 << 1
)

func reg(offset uintptr) *byte {
	return (*byte)(unsafe.Pointer(uintptr(platform.UARTBase) + offset))
}

func read(offset uintptr) byte {
	return *reg(offset)
}

func write(offset uintptr, v byte) {
	*reg(offset) = v
}

// Init brings the UART up at 38.4K baud, 8 data bits, no parity, one stop
// bit, with both FIFOs enabled and reset.
func Init() {
	write(regIER, 0x00)

	write(regLCR, lcrDLABSet)
	write(regRBRTHR, 0x03) // divisor LSB
	write(regIER, 0x00)    // divisor MSB

	write(regLCR, lcrEightBits) // clears DLAB
	write(regFCR, fcrFIFOEnable|fcrFIFOClear)
	write(regIER, ierTXEnable|ierRXEnable)
}

// Putc spins until the transmit holding register is empty, then writes c.
func Putc(c byte) {
	for read(regLSR)&lsrThrEmpty == 0 {
	}
	write(regRBRTHR, c)
}

// Getc returns the next received byte and true, or false if none is
// waiting.
func Getc() (byte, bool) {
	if read(regLSR)&lsrRBRReady == 0 {
		return 0, false
	}
	return read(regRBRTHR), true
}

// Writer adapts the UART to io.Writer, one Putc per byte, for
// kfmt.SetOutputSink and for sys_write's stdout path.
type Writer struct{}

func (Writer) Write(p []byte) (int, error) {
	for _, b := range p {
		Putc(b)
	}
	return len(p), nil
}
