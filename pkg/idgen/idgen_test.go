package idgen

import "testing"

func TestPublicIDRoundTrip(t *testing.T) {
	if err := Init("test-seed"); err != nil {
		t.Fatalf("初始化编码器失败: %v", err)
	}

	tests := []struct {
		name       string
		dbID       uint
		entityType uint64
	}{
		{name: "媒体实体", dbID: 1, entityType: EntityTypeMedia},
		{name: "分类实体", dbID: 42, entityType: EntityTypeCategory},
		{name: "文章实体", dbID: 99999, entityType: EntityTypePost},
		{name: "评论实体", dbID: 7, entityType: EntityTypeComment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publicID, err := GeneratePublicID(tt.dbID, tt.entityType)
			if err != nil {
				t.Fatalf("编码失败: %v", err)
			}
			dbID, entityType, err := DecodePublicID(publicID)
			if err != nil {
				t.Fatalf("解码失败: %v", err)
			}
			if dbID != tt.dbID || entityType != tt.entityType {
				t.Errorf("解码结果 = (%d, %d), 期望 (%d, %d)", dbID, entityType, tt.dbID, tt.entityType)
			}
		})
	}
}

func TestDecodeTyped(t *testing.T) {
	if err := Init("test-seed"); err != nil {
		t.Fatalf("初始化编码器失败: %v", err)
	}

	publicID, err := GeneratePublicID(5, EntityTypeMedia)
	if err != nil {
		t.Fatalf("编码失败: %v", err)
	}

	t.Run("类型匹配", func(t *testing.T) {
		dbID, err := DecodeTyped(publicID, EntityTypeMedia)
		if err != nil {
			t.Fatalf("解码失败: %v", err)
		}
		if dbID != 5 {
			t.Errorf("dbID = %d, 期望 5", dbID)
		}
	})

	t.Run("类型不匹配", func(t *testing.T) {
		if _, err := DecodeTyped(publicID, EntityTypePost); err == nil {
			t.Error("期望类型不匹配时报错")
		}
	})

	t.Run("垃圾输入", func(t *testing.T) {
		if _, err := DecodeTyped("!!!", EntityTypeMedia); err == nil {
			t.Error("期望垃圾输入报错")
		}
	})
}

func TestSeedDeterminism(t *testing.T) {
	if err := Init("seed-a"); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	first, _ := GeneratePublicID(123, EntityTypeMedia)

	if err := Init("seed-a"); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	second, _ := GeneratePublicID(123, EntityTypeMedia)

	if first != second {
		t.Errorf("同一种子应产生稳定编码: %q != %q", first, second)
	}

	if err := Init("seed-b"); err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	third, _ := GeneratePublicID(123, EntityTypeMedia)
	if first == third {
		t.Error("不同种子应产生不同编码")
	}
}
