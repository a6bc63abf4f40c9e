package bluetooth

// DiscoverySource identifies advertisement-driven discovery in the context
// handed to a FlowCreator.
const DiscoverySource = "bluetooth"

// FlowContext carries provenance for a discovery flow.
type FlowContext struct {
	Source string
}

// FlowCreator starts integration discovery flows for matched advertisements.
// The manager calls CreateFlow once per (domain, advertisement) pair that
// passes an integration matcher behind the match cache gate; deduplication
// of repeat discoveries beyond that gate is the creator's concern.
type FlowCreator interface {
	CreateFlow(domain string, flowCtx FlowContext, info *ServiceInfo)
}
