package model

import "testing"

func strPtr(s string) *string { return &s }

func TestInviteValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		invite  Invite
		wantErr bool
	}{
		{
			name:   "valid server invite",
			invite: Invite{ID: "inv1", Kind: InviteKindServer, ServerID: strPtr("server1"), CreatorID: "user1"},
		},
		{
			name:   "valid server invite with channel",
			invite: Invite{ID: "inv2", Kind: InviteKindServer, ServerID: strPtr("server1"), ChannelID: strPtr("chan1"), CreatorID: "user1"},
		},
		{
			name:   "valid group invite",
			invite: Invite{ID: "inv3", Kind: InviteKindGroup, ChannelID: strPtr("group1"), CreatorID: "user1"},
		},
		{
			name:    "server invite missing server id",
			invite:  Invite{ID: "inv4", Kind: InviteKindServer, CreatorID: "user1"},
			wantErr: true,
		},
		{
			name:    "server invite with empty server id",
			invite:  Invite{ID: "inv5", Kind: InviteKindServer, ServerID: strPtr(""), CreatorID: "user1"},
			wantErr: true,
		},
		{
			name:    "group invite missing channel id",
			invite:  Invite{ID: "inv6", Kind: InviteKindGroup, CreatorID: "user1"},
			wantErr: true,
		},
		{
			name:    "group invite referencing a server",
			invite:  Invite{ID: "inv7", Kind: InviteKindGroup, ChannelID: strPtr("group1"), ServerID: strPtr("server1"), CreatorID: "user1"},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			invite:  Invite{ID: "inv8", Kind: "mystery", CreatorID: "user1"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.invite.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}
