package transport

import (
	"context"
	"io"
	"net"
	"strconv"
)

// CommandPort and DataPort are the runtime channels' fixed ports (§6).
const (
	CommandPort = 7465
	DataPort    = 7475
)

// HostAddr returns host:port for dialing the device's command or data
// channel from a host build.
func HostAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// DialTCP returns a Dialer for the runtime-command channel (§6: TCP,
// port 7465).
func DialTCP(addr string) Dialer {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		var d net.Dialer
		return d.DialContext(ctx, "tcp", addr)
	}
}

// ListenTCP returns a Dialer that accepts exactly one inbound connection
// per call — the device side of the runtime-command channel.
func ListenTCP(addr string) Dialer {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		lc := net.ListenConfig{}
		ln, err := lc.Listen(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		defer ln.Close()
		type result struct {
			c   net.Conn
			err error
		}
		ch := make(chan result, 1)
		go func() {
			c, err := ln.Accept()
			ch <- result{c, err}
		}()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			return r.c, r.err
		}
	}
}

// packetConn adapts a connected net.PacketConn (with a fixed peer) to
// io.ReadWriteCloser, since the runtime-data channel is UDP (§6).
type packetConn struct {
	pc   net.PacketConn
	peer net.Addr
}

func (p *packetConn) Read(b []byte) (int, error) {
	n, _, err := p.pc.ReadFrom(b)
	return n, err
}

func (p *packetConn) Write(b []byte) (int, error) { return p.pc.WriteTo(b, p.peer) }
func (p *packetConn) Close() error                { return p.pc.Close() }

// DialUDP returns a Dialer for the runtime-data channel from the host
// side, sending to addr (§6: UDP, port 7475).
func DialUDP(addr string) Dialer {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		peer, err := net.ResolveUDPAddr("udp", addr)
		if err != nil {
			return nil, err
		}
		pc, err := net.ListenPacket("udp", ":0")
		if err != nil {
			return nil, err
		}
		return &packetConn{pc: pc, peer: peer}, nil
	}
}

// ListenUDP returns a Dialer for the device side of the runtime-data
// channel: it binds addr and treats the first peer it hears from as the
// session's remote end.
func ListenUDP(addr string) Dialer {
	return func(ctx context.Context) (io.ReadWriteCloser, error) {
		udpAddr, err := net.ResolveUDPAddr("udp", addr)
		if err != nil {
			return nil, err
		}
		pc, err := net.ListenUDP("udp", udpAddr)
		if err != nil {
			return nil, err
		}
		buf := make([]byte, 1)
		_, peer, err := pc.ReadFrom(buf)
		if err != nil {
			pc.Close()
			return nil, err
		}
		return &packetConn{pc: pc, peer: peer}, nil
	}
}
