package entity

// Group is a named chat group. Name is the natural key. Groupmaster is the
// username of the owning user; Members are canonical usernames.
type Group struct {
	Name        string   `json:"name"`
	Groupmaster string   `json:"groupmaster"`
	Members     []string `json:"members"`
}

func NewGroup(name, groupmaster string) *Group {
	return &Group{
		Name:        name,
		Groupmaster: groupmaster,
		Members:     []string{groupmaster},
	}
}

func (g *Group) AddMember(username string) bool {
	if g.HasMember(username) {
		return false
	}
	g.Members = append(g.Members, username)
	return true
}

func (g *Group) RemoveMember(username string) bool {
	for i, m := range g.Members {
		if m == username {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}

func (g *Group) HasMember(username string) bool {
	for _, m := range g.Members {
		if m == username {
			return true
		}
	}
	return false
}
