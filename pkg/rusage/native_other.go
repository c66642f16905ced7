//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package rusage

const nativeStrategy = StrategyStub

type nativeBackend = StubBackend
