package analytics

import (
	"os"

	"github.com/votecard/cardflow/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Collector appends submission outcomes and verification verdicts to a log
// file for operators. Verification verdicts are advisory and only live here.
type Collector struct {
	fileName string
	logger   *zap.Logger
}

func NewCollector(fileName string) (*Collector, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.StacktraceKey = ""
	fileEncoder := zapcore.NewJSONEncoder(encoderConfig)
	logFile, err := os.OpenFile(fileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	writer := zapcore.AddSync(logFile)
	core := zapcore.NewTee(zapcore.NewCore(fileEncoder, writer, zapcore.InfoLevel))
	return &Collector{
		fileName: fileName,
		logger:   zap.New(core),
	}, nil
}

func (lc *Collector) RecordOutcome(workflow string, runId string, result *model.WorkflowResult) {
	lc.logger.Info("outcome",
		zap.String("workflow", workflow),
		zap.String("id", runId),
		zap.String("status", result.Status),
		zap.String("message", result.Message))
}

func (lc *Collector) RecordVerification(workflow string, runId string, service string, result model.VerificationResult) {
	lc.logger.Info("verification",
		zap.String("workflow", workflow),
		zap.String("id", runId),
		zap.String("service", service),
		zap.Bool("verdict", result.Verdict),
		zap.Float64("score", result.Score),
		zap.String("explanation", result.Explanation))
}
