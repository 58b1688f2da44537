package bincount

import (
	"net"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Graphite periodically reports a BinCounter to a graphite endpoint.
// It snapshots the counter through its read accessors only, so the usual
// single-writer rules apply: either stop logging before the reporter runs, or
// guard Log and report intervals with external locking.
type Graphite struct {
	prefix  []byte
	addr    string
	timeout time.Duration
	bc      *BinCounter

	toGraphite chan []byte
	stop       chan struct{}
	wg         sync.WaitGroup
}

// NewGraphite starts a reporter that renders bc in graphite format every
// interval seconds and delivers it to addr over TCP, reconnecting as needed.
// A trailing dot is added to prefix if missing. Call Stop to flush and
// tear it down.
func NewGraphite(prefix, addr string, interval int, timeout time.Duration, bc *BinCounter) *Graphite {
	if len(prefix) != 0 && prefix[len(prefix)-1] != '.' {
		prefix = prefix + "."
	}
	g := &Graphite{
		prefix:     []byte(prefix),
		addr:       addr,
		timeout:    timeout,
		bc:         bc,
		toGraphite: make(chan []byte, 32),
		stop:       make(chan struct{}),
	}
	g.wg.Add(2)
	go g.reporter(interval)
	go g.writer()
	return g
}

// Flush renders the counter as of now and queues the report for delivery.
// If the queue is full the report is dropped, graphite being down should not
// block the caller.
func (g *Graphite) Flush(now time.Time) {
	buf := g.bc.ReportGraphite(g.prefix, nil, now)
	if len(buf) == 0 {
		return
	}
	select {
	case g.toGraphite <- buf:
	default:
		log.Warnf("graphite: queue full, dropping report for %s", now)
	}
}

// Stop ends the reporting loop, makes a last delivery attempt for anything
// still queued, and closes the connection.
func (g *Graphite) Stop() {
	close(g.stop)
	g.wg.Wait()
}

func (g *Graphite) reporter(interval int) {
	defer g.wg.Done()
	ticker := tick(time.Duration(interval) * time.Second)
	for {
		select {
		case <-g.stop:
			return
		case now := <-ticker:
			log.Debugf("graphite: flushing report for %s", now)
			g.Flush(now)
		}
	}
}

// writer delivers queued reports to graphite, dialing lazily and redialing
// after write failures.
func (g *Graphite) writer() {
	defer g.wg.Done()

	var conn net.Conn
	defer func() {
		if conn != nil {
			conn.Close()
		}
	}()

	write := func(buf []byte) bool {
		if conn == nil {
			var err error
			conn, err = net.Dial("tcp", g.addr)
			if err != nil {
				log.Warnf("graphite: dialing %s failed: %s", g.addr, err.Error())
				conn = nil
				return false
			}
			log.Infof("graphite: connected to %s", g.addr)
		}
		conn.SetWriteDeadline(time.Now().Add(g.timeout))
		if _, err := conn.Write(buf); err != nil {
			log.Warnf("graphite: write to %s failed: %s", g.addr, err.Error())
			conn.Close()
			conn = nil
			return false
		}
		return true
	}

	// one best-effort pass over whatever is still queued when stopping
	drain := func() {
		for {
			select {
			case buf := <-g.toGraphite:
				if !write(buf) {
					log.Warnf("graphite: dropping %d queued reports", len(g.toGraphite)+1)
					return
				}
			default:
				return
			}
		}
	}

	for {
		select {
		case buf := <-g.toGraphite:
			for !write(buf) {
				select {
				case <-g.stop:
					// last chance for the in-flight report, then the queue
					if write(buf) {
						drain()
					}
					return
				case <-time.After(time.Second):
				}
			}
		case <-g.stop:
			drain()
			return
		}
	}
}

// tick provides "clean" ticks aligned to precise interval boundaries, and
// delivers them shortly after.
func tick(period time.Duration) chan time.Time {
	ch := make(chan time.Time)
	go func() {
		for {
			now := time.Now()
			diff := period - (time.Duration(now.UnixNano()) % period)
			ideal := now.Add(diff)
			time.Sleep(diff)

			// try to write, if it blocks, skip the tick
			select {
			case ch <- ideal:
			default:
			}
		}
	}()
	return ch
}
