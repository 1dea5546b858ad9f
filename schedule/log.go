package schedule

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "schedule")
