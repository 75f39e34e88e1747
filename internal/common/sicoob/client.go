package sicoob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/httpclient"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/metrics"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/retry"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/models"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/monitoring"

	"github.com/go-resty/resty/v2"
)

const (
	ServiceName   = "sicoob-integration"
	logMessage    = "[SICOOB-CLIENT]"
	pathStatement = "/integrations/sicoob/conta/extrato"
)

//go:generate mockgen -source=client.go -destination=mock/client.go -package=mock

var ErrUnexpectedStatus = errors.New("unexpected statement response status")

type Client interface {
	// GetStatement lists the account statement entries of every day touched by the window.
	GetStatement(ctx context.Context, window models.Window) (*models.StatementResponse, error)
}

type client struct {
	secretKey string
	request   *httpclient.RequestWrapper
	retryer   retry.Retryer
}

func New(
	configuration config.HTTPConfiguration,
	backoffConfig config.ExponentialBackOffConfig,
	metrics metrics.Metrics,
) Client {
	restyClient := resty.New()
	restyClient = restyClient.
		SetTransport(monitoring.NewMiddlewareRoundTripper(restyClient.GetClient().Transport)).
		SetBaseURL(configuration.BaseURL).
		SetTimeout(configuration.Timeout)

	if configuration.RetryCount > 0 {
		backoffConfig.MaxRetries = uint64(configuration.RetryCount)
	}
	if configuration.RetryWaitTime > 0 {
		backoffConfig.InitialInterval = time.Duration(configuration.RetryWaitTime) * time.Millisecond
	}

	return &client{
		secretKey: configuration.SecretKey,
		request:   httpclient.NewRequestWrapper(restyClient, metrics, ServiceName, logMessage),
		retryer:   retry.NewExponentialBackOff(backoffConfig),
	}
}

func (c *client) GetStatement(ctx context.Context, window models.Window) (res *models.StatementResponse, err error) {
	monitor := monitoring.New(ctx)
	defer func() { monitor.Finish(monitoring.WithFinishCheckError(err)) }()

	startDate := window.Start.In(common.GetLocation()).Format(common.DateFormatYYYYMMDD)
	endDate := window.LastDay().In(common.GetLocation()).Format(common.DateFormatYYYYMMDD)

	var body []byte
	err = c.retryer.Retry(ctx, func() error {
		httpRes, err := c.request.DoRequest(ctx, http.MethodGet, pathStatement, func(r *resty.Request) *resty.Request {
			return r.
				SetHeader("Accept", "application/json; charset=utf-8").
				SetHeader("Cache-Control", "no-cache").
				SetHeader("X-Correlation-Id", ctxdata.GetCorrelationId(ctx)).
				SetHeader("X-Secret-Key", c.secretKey).
				SetQueryParam("startDate", startDate).
				SetQueryParam("endDate", endDate)
		})
		if err != nil {
			return err
		}

		if httpRes.StatusCode() != http.StatusOK {
			statusErr := fmt.Errorf("%w: got %d", ErrUnexpectedStatus, httpRes.StatusCode())
			if models.IsRetryableHTTPCode(httpRes.StatusCode()) {
				return statusErr
			}
			return c.retryer.StopRetryWithErr(statusErr)
		}

		body = httpRes.Body()
		return nil
	}, func(err error) error {
		return fmt.Errorf("failed get statement %s..%s: %w", startDate, endDate, err)
	})
	if err != nil {
		return nil, err
	}

	res = &models.StatementResponse{}
	if err = json.Unmarshal(body, res); err != nil {
		return nil, fmt.Errorf("error unmarshal response: %w", err)
	}

	return res, nil
}
