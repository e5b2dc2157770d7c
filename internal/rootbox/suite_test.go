package rootbox_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRootbox(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Rootbox Suite")
}
