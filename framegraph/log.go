package framegraph

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "framegraph")
