package document

import "fmt"

// SharedVPCHost is the shared-VPC host side: an enable flag and the
// service projects attached to the host. Disabling the host forces the
// service project list empty.
type SharedVPCHost struct {
	enabled         bool
	serviceProjects *StringList
}

// NewSharedVPCHost returns a disabled host config.
func NewSharedVPCHost() *SharedVPCHost {
	return &SharedVPCHost{serviceProjects: NewStringList(nil)}
}

// SetEnabled toggles the host. Turning it off clears the service
// project list, it is not merely hidden.
func (h *SharedVPCHost) SetEnabled(v bool) {
	h.enabled = v
	if !v {
		h.serviceProjects.Clear()
	}
}

// Enabled reports whether the host is on.
func (h *SharedVPCHost) Enabled() bool { return h.enabled }

// AddServiceProject attaches a service project. The host must be
// enabled.
func (h *SharedVPCHost) AddServiceProject(name string) error {
	if !h.enabled {
		return fmt.Errorf("%w: shared VPC host", ErrDisabled)
	}
	return h.serviceProjects.Add(name)
}

// RemoveServiceProject detaches a service project.
func (h *SharedVPCHost) RemoveServiceProject(name string) error {
	return h.serviceProjects.Remove(name)
}

// ServiceProjects returns the attached projects in order.
func (h *SharedVPCHost) ServiceProjects() []string { return h.serviceProjects.Values() }

// SharedVPCService is the shared-VPC service side: the host project
// reference plus the network user and service agent grant collections.
type SharedVPCService struct {
	hostProject           string
	networkUsers          *StringList
	serviceAgentIAM       *SchemaMap
	serviceAgentSubnetIAM *SchemaMap
	networkSubnetUsers    *SchemaMap
	serviceIAMGrants      *StringList
}

// NewSharedVPCService returns an empty service-side config.
func NewSharedVPCService() *SharedVPCService {
	return &SharedVPCService{
		networkUsers:          NewStringList(nil),
		serviceAgentIAM:       NewSchemaMap(),
		serviceAgentSubnetIAM: NewSchemaMap(),
		networkSubnetUsers:    NewSchemaMap(),
		serviceIAMGrants:      NewStringList(nil),
	}
}

// SetHostProject sets the host project reference.
func (s *SharedVPCService) SetHostProject(v string) { s.hostProject = v }

// HostProject returns the host project reference.
func (s *SharedVPCService) HostProject() string { return s.hostProject }

// NetworkUsers returns the network user list.
func (s *SharedVPCService) NetworkUsers() *StringList { return s.networkUsers }

// ServiceAgentIAM returns the service agent grant map.
func (s *SharedVPCService) ServiceAgentIAM() *SchemaMap { return s.serviceAgentIAM }

// ServiceAgentSubnetIAM returns the per-subnet service agent grant map.
func (s *SharedVPCService) ServiceAgentSubnetIAM() *SchemaMap { return s.serviceAgentSubnetIAM }

// NetworkSubnetUsers returns the per-subnet network user map.
func (s *SharedVPCService) NetworkSubnetUsers() *SchemaMap { return s.networkSubnetUsers }

// ServiceIAMGrants returns the service grant list.
func (s *SharedVPCService) ServiceIAMGrants() *StringList { return s.serviceIAMGrants }
