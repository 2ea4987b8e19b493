// feed-producer publishes synthetic market data onto the kafka topics the
// archiver consumes from. Useful for local runs without a live exchange
// gateway.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

func tickerDatum(basePrice, spread float64) map[string]any {
	mid := basePrice + (rand.Float64()-0.5)*spread
	return map[string]any{
		"bid":         mid - 0.5,
		"bid_size":    rand.Float64() * 10,
		"ask":         mid + 0.5,
		"ask_size":    rand.Float64() * 10,
		"change":      (rand.Float64() - 0.5) * spread,
		"change_perc": (rand.Float64() - 0.5) * 2,
		"last_price":  mid,
		"volume":      rand.Float64() * 1000,
		"high":        mid + spread/2,
		"low":         mid - spread/2,
	}
}

func bookDatum(basePrice, spread float64) map[string]any {
	return map[string]any{
		"price":   basePrice + (rand.Float64()-0.5)*spread,
		"sig_fig": 0.1,
		"volume":  rand.Float64() * 50,
	}
}

func rawBookDatum(basePrice, spread float64) map[string]any {
	return map[string]any{
		"id":     float64(rand.Int63n(1 << 30)),
		"price":  basePrice + (rand.Float64()-0.5)*spread,
		"amount": (rand.Float64() - 0.5) * 20,
	}
}

func tradeDatum(basePrice, spread float64) map[string]any {
	return map[string]any{
		"id":     float64(rand.Int63n(1 << 30)),
		"amount": (rand.Float64() - 0.5) * 10,
		"price":  basePrice + (rand.Float64()-0.5)*spread,
	}
}

func candleDatum(basePrice, spread float64) map[string]any {
	open := basePrice + (rand.Float64()-0.5)*spread
	close := open + (rand.Float64()-0.5)*spread/4
	return map[string]any{
		"time":   float64(time.Now().Truncate(time.Minute).Unix()),
		"open":   open,
		"high":   open + rand.Float64()*spread/4,
		"low":    open - rand.Float64()*spread/4,
		"close":  close,
		"volume": rand.Float64() * 100,
	}
}

var generators = map[string]func(basePrice, spread float64) map[string]any{
	"tickers":   tickerDatum,
	"books":     bookDatum,
	"raw_books": rawBookDatum,
	"trades":    tradeDatum,
	"candles":   candleDatum,
}

func main() {
	var (
		brokers     = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topicPrefix = flag.String("topic-prefix", "marketdata", "Topic prefix, topics are <prefix>.<kind>")
		symbols     = flag.String("symbols", "BTCUSD", "Symbols to publish (comma-separated)")
		kinds       = flag.String("kinds", "tickers,books,raw_books,trades,candles", "Record kinds to publish (comma-separated)")
		delay       = flag.Duration("delay", 100*time.Millisecond, "Delay between publish rounds")
		count       = flag.Int("count", 1000, "Number of rounds, 0 for unbounded")
		basePrice   = flag.Float64("base-price", 50000, "Base price for generated data")
		priceSpread = flag.Float64("price-spread", 200.0, "Price spread range")
	)
	flag.Parse()

	symbolList := strings.Split(*symbols, ",")
	kindList := strings.Split(*kinds, ",")

	writers := make(map[string]*kafka.Writer, len(kindList))
	for _, kind := range kindList {
		if _, ok := generators[kind]; !ok {
			log.Fatalf("Unknown kind %q", kind)
		}
		writers[kind] = &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
			Topic:        *topicPrefix + "." + kind,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		}
	}
	defer func() {
		for _, w := range writers {
			w.Close()
		}
	}()

	ctx := context.Background()
	published := 0
	for round := 0; *count == 0 || round < *count; round++ {
		for _, symbol := range symbolList {
			for _, kind := range kindList {
				payload, err := json.Marshal(generators[kind](*basePrice, *priceSpread))
				if err != nil {
					log.Fatalf("Failed to encode datum: %v", err)
				}

				err = writers[kind].WriteMessages(ctx, kafka.Message{
					Key:   []byte(symbol),
					Value: payload,
				})
				if err != nil {
					log.Fatalf("Failed to publish to %s: %v", writers[kind].Topic, err)
				}
				published++
			}
		}

		if (round+1)%100 == 0 {
			log.Printf("Published %d messages", published)
		}
		time.Sleep(*delay)
	}

	log.Printf("Done, published %d messages", published)
}
