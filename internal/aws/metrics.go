package aws

import (
	"context"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics publishes counters to a CloudWatch namespace.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	Dimensions map[string]string
}

// NewMetrics returns a Metrics bound to a namespace.
func NewMetrics(cw CloudWatchAPI, namespace string, dimensions map[string]string) *Metrics {
	return &Metrics{
		CloudWatch: cw,
		Namespace:  namespace,
		Dimensions: dimensions,
	}
}

// Count adds 1 to the named counter.
func (m *Metrics) Count(ctx context.Context, name string) error {
	datum := cwtypes.MetricDatum{
		MetricName: sdkaws.String(name),
		Value:      sdkaws.Float64(1),
		Unit:       cwtypes.StandardUnitCount,
	}
	for k, v := range m.Dimensions {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(v),
		})
	}

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  sdkaws.String(m.Namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric %s: %w", name, err)
	}
	return nil
}
