package service

import (
	"context"
	"fmt"
	"time"
)

// CheckOrderStatus asks the payment gateway whether the current
// transaction settled. The endpoint answers a bare JSON boolean.
func (c *Client) CheckOrderStatus(ctx context.Context) (bool, error) {
	endpoint := fmt.Sprintf("%s/Zalopay/CheckOrderStatus", c.baseURL)
	var paid bool
	if err := c.getJSON(ctx, endpoint, &paid); err != nil {
		return false, err
	}
	return paid, nil
}

// WaitForPayment polls CheckOrderStatus until it reports success, the
// attempts run out, or the context is cancelled. It returns the final
// status; running out of attempts is not an error, the payment just has
// not settled yet.
func (c *Client) WaitForPayment(ctx context.Context, attempts int, interval time.Duration) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		paid, err := c.CheckOrderStatus(ctx)
		if err != nil {
			return false, err
		}
		if paid {
			return true, nil
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		case <-timer.C:
		}
	}
	return false, nil
}

// CheckConnection pings the API's health endpoint.
func (c *Client) CheckConnection(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/Test/connection", c.baseURL)
	return c.getJSON(ctx, endpoint, nil)
}
