package dnsettings

import "sync"

var dnsettingsTestLock sync.Mutex

func withTestGlobalLock(t interface {
	Helper()
	Cleanup(func())
}) {
	t.Helper()
	dnsettingsTestLock.Lock()
	t.Cleanup(func() {
		dnsettingsTestLock.Unlock()
	})
}
