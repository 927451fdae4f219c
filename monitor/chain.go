package monitor

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.dedis.ch/zilliqa"
	"go.dedis.ch/zilliqa/provider"
	"golang.org/x/xerrors"
)

var (
	promTxBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zilliqa_chain_tx_blocks",
		Help: "number of transaction blocks of the chain",
	})

	promDSBlocks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zilliqa_chain_ds_blocks",
		Help: "number of directory service blocks of the chain",
	})

	promTransactions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zilliqa_chain_transactions",
		Help: "number of transactions of the chain",
	})

	promTxRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "zilliqa_chain_transaction_rate",
		Help: "transactions per second reported by the chain",
	})

	promPollErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "zilliqa_chain_poll_errors_total",
		Help: "total number of failed polls of the chain",
	})
)

func init() {
	zilliqa.PromCollectors = append(zilliqa.PromCollectors,
		promTxBlocks, promDSBlocks, promTransactions, promTxRate, promPollErrors)
}

// ChainReader is the interface of the endpoint polled by the monitor.
type ChainReader interface {
	GetBlockchainInfo(ctx context.Context) (provider.BlockchainInfo, error)
}

// Poller updates the gauges of the chain at a regular interval.
type Poller struct {
	reader   ChainReader
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller returns a poller of the reader.
func NewPoller(reader ChainReader, interval time.Duration) Poller {
	return Poller{
		reader:   reader,
		interval: interval,
		logger:   zilliqa.Logger.With().Str("role", "monitor").Logger(),
	}
}

// Run polls the chain until the context is done. A failed poll is logged and
// counted but does not stop the poller.
func (p Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		err := p.Poll(ctx)
		if err != nil {
			promPollErrors.Inc()
			p.logger.Warn().Err(err).Msg("poll failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Poll reads the chain once and updates the gauges.
func (p Poller) Poll(ctx context.Context) error {
	info, err := p.reader.GetBlockchainInfo(ctx)
	if err != nil {
		return xerrors.Errorf("failed to get blockchain info: %v", err)
	}

	counters := []struct {
		gauge prometheus.Gauge
		value string
	}{
		{promTxBlocks, info.NumTxBlocks},
		{promDSBlocks, info.NumDSBlocks},
		{promTransactions, info.NumTransactions},
	}

	for _, counter := range counters {
		value, err := strconv.ParseFloat(counter.value, 64)
		if err != nil {
			return xerrors.Errorf("invalid counter '%s': %v", counter.value, err)
		}

		counter.gauge.Set(value)
	}

	promTxRate.Set(info.TransactionRate)

	return nil
}
