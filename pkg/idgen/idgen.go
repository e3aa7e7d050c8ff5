/*
 * @Description: 公共 ID 的生成和解码服务
 * @Author: 蓝屿
 * @Date: 2026-03-03 14:25:08
 * @LastEditTime: 2026-05-12 18:47:30
 * @LastEditors: 蓝屿
 */
package idgen

import (
	"fmt"
	mrand "math/rand"

	"github.com/sqids/sqids-go"
)

// sqidsEncoder 是用于生成和解码公共 ID 的 Sqids 编码器实例。
var sqidsEncoder *sqids.Sqids

// DefaultAlphabet 是默认的字母表
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// EntityType 定义了不同实体在生成公共 ID 时的类型标识。
const (
	EntityTypeUser           uint64 = 1 // 用户实体的类型标识
	EntityTypeMedia          uint64 = 2 // 媒体实体的类型标识
	EntityTypeCategory       uint64 = 3 // 分类实体的类型标识
	EntityTypeCategoryLocale uint64 = 4 // 分类翻译实体的类型标识
	EntityTypePost           uint64 = 5 // 文章实体的类型标识
	EntityTypePostLocale     uint64 = 6 // 文章翻译实体的类型标识
	EntityTypePostTag        uint64 = 7 // 文章标签实体的类型标识
	EntityTypeComment        uint64 = 8 // 评论实体的类型标识
)

// shuffleAlphabet 使用种子打乱字母表，保证同一种子产生稳定的编码结果
func shuffleAlphabet(seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}

	r := mrand.New(mrand.NewSource(seedInt))

	alphabet := []rune(DefaultAlphabet)
	r.Shuffle(len(alphabet), func(i, j int) {
		alphabet[i], alphabet[j] = alphabet[j], alphabet[i]
	})

	return string(alphabet)
}

// Init 使用种子初始化 Sqids 编码器。
// 如果 seed 为空字符串，则使用默认字母表。
func Init(seed string) error {
	alphabet := DefaultAlphabet
	if seed != "" {
		alphabet = shuffleAlphabet(seed)
	}

	s, err := sqids.New(
		sqids.Options{
			MinLength: 4,
			Alphabet:  alphabet,
		},
	)
	if err != nil {
		return fmt.Errorf("初始化 Sqids 编码器失败: %w", err)
	}
	sqidsEncoder = s
	return nil
}

// GeneratePublicID 把数据库自增 ID 和实体类型编码为对外暴露的公共 ID。
func GeneratePublicID(dbID uint, entityType uint64) (string, error) {
	if sqidsEncoder == nil {
		return "", fmt.Errorf("Sqids 编码器未初始化")
	}

	id, err := sqidsEncoder.Encode([]uint64{uint64(dbID), entityType})
	if err != nil {
		return "", fmt.Errorf("编码公共ID失败: %w", err)
	}

	return id, nil
}

// DecodePublicID 解码公共 ID，返回数据库 ID 和实体类型。
func DecodePublicID(publicID string) (dbID uint, entityType uint64, err error) {
	if sqidsEncoder == nil {
		return 0, 0, fmt.Errorf("Sqids 编码器未初始化")
	}

	numbers := sqidsEncoder.Decode(publicID)

	if len(numbers) != 2 {
		return 0, 0, fmt.Errorf("无法从公共ID解码出预期数量的数字(期望2个，得到%d个)", len(numbers))
	}

	return uint(numbers[0]), numbers[1], nil
}

// DecodeTyped 解码公共 ID 并校验实体类型是否匹配。
func DecodeTyped(publicID string, want uint64) (uint, error) {
	dbID, entityType, err := DecodePublicID(publicID)
	if err != nil {
		return 0, err
	}
	if entityType != want {
		return 0, fmt.Errorf("公共ID '%s' 的实体类型不匹配(期望%d，得到%d)", publicID, want, entityType)
	}
	return dbID, nil
}
