package transport

import "time"

type paced struct {
	Receiver
	ticker *time.Ticker
}

// Paced returns a receiver that hands out at most one frame per interval,
// for replaying recordings at tick speed.
func Paced(r Receiver, interval time.Duration) Receiver {
	return &paced{Receiver: r, ticker: time.NewTicker(interval)}
}

func (p *paced) Next(dst []byte) ([]byte, error) {
	<-p.ticker.C
	return p.Receiver.Next(dst)
}

func (p *paced) Close() error {
	p.ticker.Stop()
	return p.Receiver.Close()
}
