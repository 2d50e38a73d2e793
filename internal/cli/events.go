package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"sproutlog/pkg/rabbitmq"

	"github.com/spf13/cobra"
	amqp "github.com/streadway/amqp"
)

func newEventsCommand(opts *rootOptions) *cobra.Command {
	var bindingKey string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print garden events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}
			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: opts.cfg.RabbitMQURL})
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = client.Consume(ctx, bindingKey, func(msg amqp.Delivery) error {
				_, err := fmt.Fprintf(out, "%s %s %s\n", msg.Timestamp.Format("2006-01-02 15:04:05"), msg.RoutingKey, msg.Body)
				return err
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&bindingKey, "key", "#", "Topic binding key, e.g. inventory.*")
	return cmd
}
