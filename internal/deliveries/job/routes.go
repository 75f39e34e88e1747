package job

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/flag"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/common/log/ctxdata"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/config"
	v1reconciliation "bitbucket.org/fintechpsp/go-psp-reconciliation/internal/deliveries/job/v1/reconciliation"
	"bitbucket.org/fintechpsp/go-psp-reconciliation/internal/services"

	"github.com/google/uuid"
)

var ErrInvalidJob = errors.New("invalid version or job name")

const versionV1 = "v1"

// JobFunc runs one job. date is zero when the worker was started without one.
type JobFunc = func(ctx context.Context, date time.Time, flag flag.Job) error

// JobRoutes maps version to job name to JobFunc.
type JobRoutes map[string]map[string]JobFunc

type Job struct {
	Routes JobRoutes
}

func New(cfg config.Config, reconciliationSrv services.ReconciliationService) *Job {
	return &Job{Routes: JobRoutes{
		versionV1: v1reconciliation.Routes(cfg.Reconciliation, reconciliationSrv),
	}}
}

// List returns every registered job as "version=<v>, name=<n>", sorted.
func (j *Job) List() []string {
	var lines []string
	for version, jobs := range j.Routes {
		for name := range jobs {
			lines = append(lines, fmt.Sprintf("version=%s, name=%s", version, name))
		}
	}
	sort.Strings(lines)
	return lines
}

// Start runs the job named by flag under a fresh correlation id and logs its outcome.
func (j *Job) Start(ctx context.Context, flag flag.Job) (err error) {
	ctx = ctxdata.Sets(ctx, ctxdata.SetCorrelationId(uuid.New().String()))

	started := time.Now()
	defer func() {
		log.LogJob(ctx, flag.JobName, flag.Version, flag.Date, started, err)
	}()

	fn, ok := j.Routes[flag.Version][flag.JobName]
	if !ok {
		return fmt.Errorf("%w: %s/%s", ErrInvalidJob, flag.Version, flag.JobName)
	}

	var runningDate time.Time
	if flag.Date != "" {
		if runningDate, err = common.ParseStringToDatetime(common.DateFormatYYYYMMDD, flag.Date); err != nil {
			return fmt.Errorf("job date %q: %w", flag.Date, err)
		}
	}

	return fn(ctx, runningDate, flag)
}
