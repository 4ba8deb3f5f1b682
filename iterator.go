package chuffman

import (
	"fmt"
	"io"
	"log/slog"
)

// maxIteratorSentinel matches the original source's own restriction: the
// iterator's vault/reserve mechanics were designed and only ever exercised
// for an 8-bit sentinel. See NewIterator.
const maxIteratorSentinel = 8

// Iterator pulls one decoded byte per call to Next. Unlike Reader, it reads
// at most one byte from its source per call, and preserves a strict causal
// ordering between input consumption and output production: the k-th byte
// it yields is available no later than after it has consumed the k-th
// input byte that contributed to it.
//
// This costs two extra pieces of state relative to Reader: a second 64-bit
// register (the vault) staging input bytes that arrived before buffer had
// room for them, and a small FIFO (reserve) of symbols decoded while
// draining the vault but not yet handed to the caller.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	tbl      *lookupTable
	src      io.Reader
	sentinel uint
	shift    uint

	buffer uint64
	vault  uint64

	// vaultFill is the count of valid, high-aligned bits currently
	// staged in vault. It is below 8 immediately before a new byte is
	// appended, because emptyVault decodes until the next codeword is
	// longer than what vault still holds.
	vaultFill uint

	// realBits is a signed ledger of how many of the bits currently
	// live across buffer+vault are backed by actual input rather than
	// the zero padding introduced when buffer or vault shift left past
	// their real content. It only matters once the source is
	// exhausted: see drainBuffer.
	realBits int

	reserve []byte

	remaining int
	err       error

	scratch [1]byte
	log     *slog.Logger
}

// NewIterator builds an Iterator that will yield exactly goal bytes by
// decoding src against model. Model.Sentinel() must be at most 8.
//
// Construction reads up to 8 bytes from src to prime the buffer. Reading
// fewer than 8 bytes is only accepted if goal is small enough to plausibly
// be satisfied from the shortest codeword length alone; otherwise
// construction fails with ErrShortSource, since there would be no way to
// honor goal without fabricating output from padding, which Iterator never
// does (unlike Reader's terminal drain, which tolerates it right up to the
// point where realBits is exhausted).
func NewIterator(model Model, src io.Reader, goal int) (*Iterator, error) {
	if goal < 0 {
		return nil, fmt.Errorf("chuffman: negative goal %d", goal)
	}
	tbl, err := buildLookup(model)
	if err != nil {
		return nil, err
	}
	s := model.Sentinel()
	if s > maxIteratorSentinel {
		return nil, fmt.Errorf("%w: sentinel %d exceeds iterator limit %d", ErrSentinelRange, s, maxIteratorSentinel)
	}

	it := &Iterator{
		tbl:       tbl,
		src:       src,
		sentinel:  uint(s),
		shift:     uint(64 - s),
		remaining: goal,
		log:       noopLogger,
	}

	primed := 0
	for primed < 8 {
		n, rerr := src.Read(it.scratch[:])
		if n == 1 {
			it.buffer |= uint64(it.scratch[0]) << uint(56-8*primed)
			primed++
			continue
		}
		if rerr == io.EOF || rerr == nil {
			break
		}
		return nil, rerr
	}
	it.realBits = primed * 8

	if goal > 0 && primed < 8 {
		minLen := minLength(model.PrefixTable(), s)
		maxFromReal := it.realBits / minLen
		if goal > maxFromReal {
			return nil, fmt.Errorf("%w: goal %d needs more than the %d bit(s) primed from source", ErrShortSource, goal, it.realBits)
		}
	}

	return it, nil
}

// SetLogger attaches a structured logger for bit-level diagnostics, logged
// at slog.LevelDebug. A nil logger disables logging.
func (it *Iterator) SetLogger(l *slog.Logger) {
	if l == nil {
		l = noopLogger
	}
	it.log = l
}

// Err returns the first non-EOF error encountered reading the source, if
// any. Follow the same convention as bufio.Scanner: call Err after Next
// returns false to distinguish a clean exhaustion of goal from an I/O
// failure or a truncated stream.
func (it *Iterator) Err() error {
	return it.err
}

// Next returns the next decoded byte, or ok == false once goal bytes have
// been produced (or a truncated stream or I/O error cuts the sequence
// short — check Err in that case).
func (it *Iterator) Next() (byte, bool) {
	if it.remaining == 0 {
		return 0, false
	}

	n, err := it.src.Read(it.scratch[:])
	if n == 1 {
		return it.consume(it.scratch[0]), true
	}
	if err != nil && err != io.EOF {
		it.err = err
		it.remaining = 0
		return 0, false
	}

	// Source exhausted: drain the reserve first, then the buffer
	// directly with no further refill.
	if len(it.reserve) > 0 {
		sym := it.reserve[0]
		it.reserve = it.reserve[1:]
		it.remaining--
		return sym, true
	}
	sym, ok := it.drainBuffer()
	if !ok {
		it.err = ErrTruncated
		it.remaining = 0
		return 0, false
	}
	it.remaining--
	return sym, true
}

// consume handles a freshly read input byte: it decodes whatever whole
// codewords the leftover vault bits allow into reserve, appends val right
// after the vault's remaining bits, decodes one
// codeword, and returns whichever symbol the one-in-one-out contract says
// to yield this call.
func (it *Iterator) consume(val byte) byte {
	if it.vaultFill > 0 {
		it.emptyVault()
	}

	it.vault |= uint64(val) << (64 - 8 - it.vaultFill)
	it.vaultFill += 8
	it.realBits += 8

	sym, length := it.tbl.decodeTop(it.buffer, it.shift)
	it.refillFromVault(uint(length))
	it.realBits -= length
	it.remaining--

	it.log.Debug("chuffman: iterator consume", "symbol", sym, "length", length, "vaultFill", it.vaultFill)

	if len(it.reserve) > 0 {
		out := it.reserve[0]
		it.reserve = it.reserve[1:]
		it.reserve = append(it.reserve, sym)
		return out
	}
	return sym
}

// emptyVault decodes symbols straight from buffer, refilling buffer's low
// bits from vault as it goes, until the next codeword is longer than the
// bits vault still holds — queuing every symbol it produces onto reserve,
// since the caller of consume is waiting to hand back a symbol for the
// byte it just read, not these. Stopping there means no zero bits are ever
// shifted into buffer ahead of real input.
func (it *Iterator) emptyVault() {
	for {
		sym, length := it.tbl.decodeTop(it.buffer, it.shift)
		if uint(length) > it.vaultFill {
			return
		}
		it.refillFromVault(uint(length))
		it.realBits -= length
		it.reserve = append(it.reserve, sym)
	}
}

// refillFromVault commits a decoded codeword of the given length: buffer
// shifts left by cut, and its newly emptied low bits are backfilled from
// the top of vault. While the source still supplies bytes, cut never
// exceeds vaultFill; only drainBuffer, after the source is exhausted, can
// cut past vault's real bits, and the shortfall is then zero (vault's
// content is always zero below vaultFill), exactly like Reader's terminal
// drain.
func (it *Iterator) refillFromVault(cut uint) {
	it.buffer <<= cut
	it.buffer |= it.vault >> (64 - cut)
	it.vault <<= cut
	if cut >= it.vaultFill {
		it.vaultFill = 0
	} else {
		it.vaultFill -= cut
	}
}

// drainBuffer decodes from buffer once the source is exhausted and reserve
// is empty, still pulling in the few bits the last consume left in vault.
// It refuses to manufacture a symbol from pure padding.
func (it *Iterator) drainBuffer() (byte, bool) {
	if it.realBits <= 0 {
		return 0, false
	}
	sym, length := it.tbl.decodeTop(it.buffer, it.shift)
	it.refillFromVault(uint(length))
	it.realBits -= length
	return sym, true
}

func minLength(entries []Entry, sentinel int) int {
	min := sentinel
	for _, e := range entries {
		if e.Length < min {
			min = e.Length
		}
	}
	if min < 1 {
		min = 1
	}
	return min
}
